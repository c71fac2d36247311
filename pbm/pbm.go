/*
Package pbm implements a decoder and encoder for monochrome Netpbm bitmaps.

Two encodings are supported. The plain (P1) encoding is text: the magic
number, the width and height, then one token per pixel where "1" is lit.
The raw (P4) encoding has the same text header followed by a single
whitespace byte and the pixels already packed eight to a byte, most
significant bit first, with each row padded to a whole byte. In both
encodings a '#' starts a comment that runs to the end of the line.

Decoded bitmaps are returned in the packed layout of package bitmap, which is
byte-for-byte the P4 payload layout.
*/
package pbm

var (
	magicPlain = []byte("P1")
	magicRaw   = []byte("P4")
)

// A FormatError reports that the input is not a valid PBM, or is not the PBM
// that was expected.
type FormatError string

func (e FormatError) Error() string { return "pbm: invalid format: " + string(e) }
