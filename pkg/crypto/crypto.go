package crypto

import (
	"crypto/rand"
	"math/big"
)

const upperAlnum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRandomCode returns n random characters drawn from digits and upper
// case letters.
func GenerateRandomCode(n uint) string {
	return generate(upperAlnum, n)
}

func generate(charset string, n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[RandIntn(len(charset))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
