package common

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

var errUnsupportedImage = fmt.Errorf("We just accept jpeg, gif or png")

func IsImage(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}

	return false
}

// DownscaleImage shrinks the image to maxWidth keeping its aspect ratio. The
// original bytes are returned if the image is already narrow enough.
func DownscaleImage(mime string, data []byte, maxWidth uint) ([]byte, error) {
	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return data, nil
	}

	img = resize.Resize(maxWidth, 0, img, resize.Lanczos2)
	return encodeImg(mime, img)
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, errUnsupportedImage
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, errUnsupportedImage
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
