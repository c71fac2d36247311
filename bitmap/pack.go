package bitmap

// Pack packs width*height pixel values, given row-major, into a packed bitmap.
// The caller must pass exactly width*height values.
func Pack(bits []bool, width, height int) []byte {
	stride := Stride(width)
	out := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bits[y*width+x] {
				out[y*stride+x/bitsPerByte] |= mask(x)
			}
		}
	}
	return out
}

// Unpack is the inverse of Pack. Padding bits are ignored.
func Unpack(data []byte, width, height int) []bool {
	stride := Stride(width)
	bits := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bits[y*width+x] = data[y*stride+x/bitsPerByte]&mask(x) != 0
		}
	}
	return bits
}

// Invert returns a copy of data with every byte complemented. For data that
// is already packed this flips the polarity of every pixel.
func Invert(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = ^b
	}
	return out
}
