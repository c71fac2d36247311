/*
Package oledgen compiles an animation manifest and its monochrome frame images
into a C header of packed bitmaps for the OLED display.

Frames are read from PBM files, in either the plain (P1) or raw (P4)
encoding, or from any image format the configured ImageDecoder understands.
Every frame is re-packed to one bit per pixel, rows padded to a whole byte,
and emitted together with a frame table and an animation descriptor per
animation. A boot animation descriptor is always present in the output.
*/
package oledgen

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Animation is a fully decoded animation, ready to be written out.
type Animation struct {
	Name      string
	Symbol    string
	Width     int
	Height    int
	BitPacked bool
	Frames    []*Frame
}

// Frame is a single decoded frame. Bitmap is always
// bitmap.Size(Width, Height) bytes for the owning animation.
type Frame struct {
	Symbol   string
	Bitmap   []byte
	Duration time.Duration
	Source   string
}

// Generator loads manifests and decodes their frames.
type Generator struct {
	images  ImageDecoder
	cache   *Cache
	workers int
	logger  *log.Logger
}

// New returns a Generator. images may be nil in which case only PBM frames
// can be decoded, cache may be nil to disable caching of decoded frames.
func New(images ImageDecoder, cache *Cache, workers int, logger *log.Logger) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		images:  images,
		cache:   cache,
		workers: workers,
		logger:  logger,
	}
}

// Compile loads the manifest in file and decodes every frame, resolving
// frame paths against root.
func (g *Generator) Compile(ctx context.Context, file, root string) ([]*Animation, error) {
	m, err := LoadManifest(file)
	if err != nil {
		return nil, err
	}
	return g.Load(ctx, m, root)
}

// Generate compiles the manifest in file and writes the resulting header to
// out. Nothing is written unless every frame decodes successfully.
func (g *Generator) Generate(ctx context.Context, file, root, out string) error {
	animations, err := g.Compile(ctx, file, root)
	if err != nil {
		return err
	}
	return g.Write(out, filepath.Base(file), animations)
}

// Write renders the header for animations and replaces out with it.
func (g *Generator) Write(out, source string, animations []*Animation) error {
	b := new(bytes.Buffer)
	if err := WriteHeader(b, source, animations); err != nil {
		return err
	}

	if err := writeFile(out, b.Bytes()); err != nil {
		return err
	}
	g.logger.Printf("Wrote %d animation(s) to \"%s\"\n", len(animations), out)

	return nil
}

// writeFile replaces file with b atomically so an interrupted run never
// leaves a truncated header behind.
func writeFile(file string, b []byte) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
