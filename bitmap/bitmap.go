/*
Package bitmap implements the packed 1-bit-per-pixel raster used by the OLED
firmware.

Pixels are stored row-major with each row occupying Stride(width) bytes. The
leftmost pixel of a row is the most significant bit of the first byte of that
row and a set bit means the pixel is lit. When the width is not a multiple of
8 the unused low bits of the last byte in each row are zero.
*/
package bitmap

import (
	"image"
	"image/color"
)

const bitsPerByte = 8

// Stride returns the number of bytes used by a single row of the given width.
func Stride(width int) int {
	return (width + bitsPerByte - 1) / bitsPerByte
}

// Size returns the length in bytes of a packed bitmap of the given dimensions.
func Size(width, height int) int {
	return Stride(width) * height
}

// Bitmap wraps packed pixel data so it can be used as an image.Image, lit
// pixels are white.
type Bitmap struct {
	Pix    []byte
	Width  int
	Height int
}

// New returns a Bitmap for the packed data, which must be Size(width, height)
// bytes long.
func New(pix []byte, width, height int) *Bitmap {
	return &Bitmap{
		Pix:    pix,
		Width:  width,
		Height: height,
	}
}

// ColorModel returns color.GrayModel.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the rectangle (0, 0)-(Width, Height).
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At returns white for a lit pixel, black otherwise.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Lit(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}

// Lit reports whether the pixel at (x, y) is on. Points outside the bitmap are
// never lit.
func (b *Bitmap) Lit(x, y int) bool {
	if !image.Pt(x, y).In(b.Bounds()) {
		return false
	}
	return b.Pix[y*Stride(b.Width)+x/bitsPerByte]&mask(x) != 0
}

func mask(x int) byte {
	return 0x80 >> uint(x%bitsPerByte)
}
