package oledgen

import (
	"os"
	"path/filepath"

	"github.com/bodgit/oledgen/bitmap"
	"github.com/bodgit/oledgen/pbm"
)

// Dump writes every decoded frame to dir as a raw PBM named after the frame
// symbol, which makes it easy to eyeball what ends up in the header.
func (g *Generator) Dump(dir string, animations []*Animation) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, a := range animations {
		for _, f := range a.Frames {
			file := filepath.Join(dir, f.Symbol+".pbm")
			if err := dumpFrame(file, bitmap.New(f.Bitmap, a.Width, a.Height)); err != nil {
				return err
			}
			g.logger.Printf("Dumped \"%s\"\n", file)
		}
	}

	return nil
}

func dumpFrame(file string, b *bitmap.Bitmap) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pbm.Encode(f, b); err != nil {
		return err
	}

	return f.Close()
}
