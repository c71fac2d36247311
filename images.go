//go:build !nogeneric

package oledgen

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type registryDecoder struct{}

func (registryDecoder) Decode(r io.Reader) (image.Image, error) {
	m, _, err := image.Decode(r)
	return m, err
}

// DefaultImageDecoder returns a decoder for PNG, GIF, JPEG, BMP, TIFF and WebP
// images. Building with the nogeneric tag removes it and DefaultImageDecoder
// returns nil.
func DefaultImageDecoder() ImageDecoder {
	return registryDecoder{}
}
