package pbm

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/bodgit/oledgen/bitmap"
)

type decoder struct {
	raw    []byte
	width  int
	height int
	invert bool
}

func parseDimension(tok []byte) (int, error) {
	n, err := strconv.Atoi(string(tok))
	if err != nil {
		return 0, FormatError(fmt.Sprintf("bad dimension %q", tok))
	}
	return n, nil
}

func (d *decoder) checkSize(width, height []byte) error {
	w, err := parseDimension(width)
	if err != nil {
		return err
	}
	h, err := parseDimension(height)
	if err != nil {
		return err
	}
	if w != d.width || h != d.height {
		return FormatError(fmt.Sprintf("size mismatch: expected %dx%d, got %dx%d", d.width, d.height, w, h))
	}
	return nil
}

func (d *decoder) decodePlain() ([]byte, error) {
	toks := Tokens(d.raw)
	if len(toks) < 3 || !bytes.Equal(toks[0], magicPlain) {
		return nil, FormatError("invalid P1 header")
	}
	if err := d.checkSize(toks[1], toks[2]); err != nil {
		return nil, err
	}

	pixels := toks[3:]
	if len(pixels) != d.width*d.height {
		return nil, FormatError(fmt.Sprintf("P1 pixel count mismatch: expected %d, got %d", d.width*d.height, len(pixels)))
	}

	// Anything other than "1" is unlit, malformed pixel tokens included
	bits := make([]bool, len(pixels))
	for i, tok := range pixels {
		bits[i] = len(tok) == 1 && tok[0] == '1'
		if d.invert {
			bits[i] = !bits[i]
		}
	}

	return bitmap.Pack(bits, d.width, d.height), nil
}

func (d *decoder) decodeRaw() ([]byte, error) {
	s := scanner{buf: d.raw, pos: len(magicRaw)}
	if s.pos < len(d.raw) && !isSpace(d.raw[s.pos]) && d.raw[s.pos] != '#' {
		return nil, FormatError("invalid P4 header")
	}

	var header [2][]byte
	for i := range header {
		tok, ok := s.next()
		if !ok {
			return nil, FormatError("invalid P4 header")
		}
		header[i] = tok
	}
	if err := d.checkSize(header[0], header[1]); err != nil {
		return nil, err
	}

	// Exactly one whitespace byte separates the header from the payload,
	// the payload itself may well start with bytes that look like whitespace
	if s.pos >= len(d.raw) {
		return nil, FormatError("truncated P4 payload")
	}
	if !isSpace(d.raw[s.pos]) {
		return nil, FormatError("missing P4 header separator")
	}
	payload := d.raw[s.pos+1:]

	size := bitmap.Size(d.width, d.height)
	if len(payload) < size {
		return nil, FormatError(fmt.Sprintf("truncated P4 payload: expected %d bytes, got %d", size, len(payload)))
	}

	if d.invert {
		return bitmap.Invert(payload[:size]), nil
	}
	return append([]byte(nil), payload[:size]...), nil
}

// Decode reads a P1 or P4 bitmap from r which must be exactly width by height
// pixels and returns it packed. If invert is set every pixel is flipped.
// Bytes beyond the end of a P4 payload are ignored.
func Decode(r io.Reader, width, height int, invert bool) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := decoder{
		raw:    raw,
		width:  width,
		height: height,
		invert: invert,
	}

	switch {
	case bytes.HasPrefix(raw, magicPlain):
		return d.decodePlain()
	case bytes.HasPrefix(raw, magicRaw):
		return d.decodeRaw()
	default:
		return nil, FormatError("unsupported magic number, expected P1 or P4")
	}
}
