package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandIntn(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandIntn(3)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 3)
	}

	require.Panics(t, func() { RandIntn(0) })
}

func TestGenerateRandomCode(t *testing.T) {
	code := GenerateRandomCode(4)
	require.Len(t, code, 4)
	for _, c := range code {
		require.True(t, strings.ContainsRune(upperAlnum, c))
	}
}
