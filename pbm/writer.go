package pbm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/oledgen/bitmap"
)

// Any pixel at least this bright is lit when encoding an arbitrary image.
const threshold = 0x80

func toBitmap(m image.Image) *bitmap.Bitmap {
	if b, ok := m.(*bitmap.Bitmap); ok {
		return b
	}

	r := m.Bounds()
	bits := make([]bool, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			bits = append(bits, color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y >= threshold)
		}
	}
	return bitmap.New(bitmap.Pack(bits, r.Dx(), r.Dy()), r.Dx(), r.Dy())
}

// Encode writes the Image m to w in raw (P4) PBM format.
func Encode(w io.Writer, m image.Image) error {
	b := toBitmap(m)

	wr := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(wr, "%s\n%d %d\n", magicRaw, b.Width, b.Height); err != nil {
		return err
	}
	if _, err := wr.Write(b.Pix[:bitmap.Size(b.Width, b.Height)]); err != nil {
		return err
	}
	return wr.Flush()
}

// EncodePlain writes the Image m to w in plain (P1) PBM format, one row of
// pixels per line.
func EncodePlain(w io.Writer, m image.Image) error {
	b := toBitmap(m)

	wr := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(wr, "%s\n%d %d\n", magicPlain, b.Width, b.Height); err != nil {
		return err
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x > 0 {
				wr.WriteByte(' ')
			}
			if b.Lit(x, y) {
				wr.WriteByte('1')
			} else {
				wr.WriteByte('0')
			}
		}
		wr.WriteByte('\n')
	}
	return wr.Flush()
}
