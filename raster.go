package oledgen

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/oledgen/bitmap"
	"github.com/bodgit/oledgen/pbm"
	"github.com/disintegration/gift"
)

// Pixels at least this bright, on a 0-255 grayscale, are lit
const luminanceThreshold = 128

// ImageDecoder decodes frames that are not PBM files.
type ImageDecoder interface {
	Decode(r io.Reader) (image.Image, error)
}

var errNoImageDecoder = errors.New("no image decoder available, only .pbm frames are supported")

func isPBM(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".pbm")
}

func sizeMismatch(width, height int, r image.Rectangle) error {
	return fmt.Errorf("size mismatch: expected %dx%d, got %dx%d", width, height, r.Dx(), r.Dy())
}

// packImage converts m to grayscale and packs it, any pixel with a luminance
// of at least luminanceThreshold is lit.
func packImage(m image.Image, width, height int, invert bool) ([]byte, error) {
	if r := m.Bounds(); r.Dx() != width || r.Dy() != height {
		return nil, sizeMismatch(width, height, r)
	}

	g := gift.New(gift.Grayscale())
	gray := image.NewGray(g.Bounds(m.Bounds()))
	g.Draw(gray, m)

	bits := make([]bool, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lit := gray.GrayAt(gray.Rect.Min.X+x, gray.Rect.Min.Y+y).Y >= luminanceThreshold
			bits = append(bits, lit != invert)
		}
	}

	return bitmap.Pack(bits, width, height), nil
}

const (
	decoderPBM     = "pbm"
	decoderGeneric = "generic"
)

// decoderFor returns the name of the decoder used for file, or
// errNoImageDecoder if it needs one that isn't available.
func (g *Generator) decoderFor(file string) (string, error) {
	if isPBM(file) {
		return decoderPBM, nil
	}
	if g.images == nil {
		return "", errNoImageDecoder
	}
	return decoderGeneric, nil
}

func (g *Generator) decode(decoder string, b []byte, width, height int, invert bool) ([]byte, error) {
	if decoder == decoderPBM {
		return pbm.Decode(bytes.NewReader(b), width, height, invert)
	}

	m, err := g.images.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	return packImage(m, width, height, invert)
}

func sha1Hex(b []byte) string {
	h := sha1.Sum(b)
	return fmt.Sprintf("%X", h[:])
}

func (g *Generator) decodeFrame(j *frameJob) ([]byte, error) {
	a := j.animation

	b, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrNotFound, Field: j.field, Path: j.path, Err: err}
		}
		return nil, err
	}

	decoder, err := g.decoderFor(j.path)
	if err != nil {
		return nil, &Error{Kind: ErrCapabilityUnavailable, Field: j.field, Path: j.path, Err: err}
	}

	var sum string
	if g.cache != nil {
		sum = sha1Hex(b)
		cached, err := g.cache.Find(sum, decoder, a.Width, a.Height, j.invert)
		if err != nil {
			return nil, err
		}
		if len(cached) == bitmap.Size(a.Width, a.Height) {
			g.logger.Printf("Cache hit for \"%s\"\n", j.frame.Source)
			return cached, nil
		}
	}

	packed, err := g.decode(decoder, b, a.Width, a.Height, j.invert)
	switch {
	case err != nil:
		return nil, &Error{Kind: ErrFormat, Field: j.field, Path: j.path, Err: err}
	case len(packed) != bitmap.Size(a.Width, a.Height):
		return nil, &Error{Kind: ErrFormat, Field: j.field, Path: j.path, Err: fmt.Errorf("decoded %d bytes, expected %d", len(packed), bitmap.Size(a.Width, a.Height))}
	}

	if g.cache != nil {
		if err := g.cache.Add(sum, decoder, a.Width, a.Height, j.invert, packed); err != nil {
			return nil, err
		}
	}

	return packed, nil
}
