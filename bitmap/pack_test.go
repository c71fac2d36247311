package bitmap

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStride(t *testing.T) {
	tables := []struct {
		width, stride int
	}{
		{1, 1},
		{7, 1},
		{8, 1},
		{9, 2},
		{128, 16},
		{129, 17},
	}

	for _, table := range tables {
		assert.Equal(t, table.stride, Stride(table.width), "width %d", table.width)
	}
	assert.Equal(t, 1024, Size(128, 64))
}

func TestPack(t *testing.T) {
	tables := []struct {
		name   string
		bits   string
		width  int
		height int
		want   []byte
	}{
		{"alternate", "1010101001010101", 8, 2, []byte{0xaa, 0x55}},
		{"narrow", "101" + "011", 3, 2, []byte{0xa0, 0x60}},
		{"wide", "111111111" + "000000001", 9, 2, []byte{0xff, 0x80, 0x00, 0x80}},
		{"single", "1", 1, 1, []byte{0x80}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			bits := make([]bool, len(table.bits))
			for i, c := range table.bits {
				bits[i] = c == '1'
			}
			assert.Equal(t, table.want, Pack(bits, table.width, table.height))
		})
	}
}

func TestPackPaddingIsZero(t *testing.T) {
	bits := make([]bool, 5*3)
	for i := range bits {
		bits[i] = true
	}
	for _, b := range Pack(bits, 5, 3) {
		assert.Equal(t, byte(0xf8), b)
	}
}

func TestPackUnpack(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for width := 1; width <= 20; width++ {
		for height := 1; height <= 5; height++ {
			bits := make([]bool, width*height)
			for i := range bits {
				bits[i] = r.Intn(2) == 1
			}
			packed := Pack(bits, width, height)
			require.Len(t, packed, Size(width, height))
			assert.Equal(t, bits, Unpack(packed, width, height), "%dx%d", width, height)
		}
	}
}

func TestInvert(t *testing.T) {
	data := []byte{0x0f, 0xf0, 0x00, 0xa5}
	inverted := Invert(data)
	assert.Equal(t, []byte{0xf0, 0x0f, 0xff, 0x5a}, inverted)
	assert.Equal(t, data, Invert(inverted))
	assert.Equal(t, []byte{0x0f, 0xf0, 0x00, 0xa5}, data, "input modified")
}

func TestBitmap(t *testing.T) {
	b := New([]byte{0xaa, 0x55}, 8, 2)
	assert.Equal(t, image.Rect(0, 0, 8, 2), b.Bounds())
	assert.True(t, b.Lit(0, 0))
	assert.False(t, b.Lit(1, 0))
	assert.True(t, b.Lit(7, 1))
	assert.False(t, b.Lit(8, 1))
	assert.False(t, b.Lit(-1, 0))
	assert.Equal(t, color.Gray{Y: 0xff}, b.At(0, 0))
	assert.Equal(t, color.Gray{}, b.At(0, 1))
}
