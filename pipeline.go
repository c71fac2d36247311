package oledgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

type frameJob struct {
	animation *Animation
	frame     *Frame
	field     string
	path      string
	invert    bool
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return &Error{Kind: ErrNotFound, Field: "assets root", Path: root, Err: errors.New("assets root not found")}
	}
	return nil
}

func resolveFrame(root, rel string) string {
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// prepare validates every animation in manifest order and builds the frame
// decoding jobs. No frame is decoded until the whole manifest is known to be
// good.
func (g *Generator) prepare(m *Manifest, root string) ([]*Animation, []frameJob, error) {
	if err := checkRoot(root); err != nil {
		return nil, nil, err
	}

	var (
		animations = make([]*Animation, 0, len(m.Animations))
		jobs       []frameJob
		symbols    = make(map[string]string)
	)

	for i := range m.Animations {
		cfg := &m.Animations[i]
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}

		a := &Animation{
			Name:      cfg.Name,
			Symbol:    Sanitize(cfg.Name),
			Width:     cfg.Width,
			Height:    cfg.Height,
			BitPacked: cfg.BitPacked,
			Frames:    make([]*Frame, len(cfg.Frames)),
		}

		if other, ok := symbols[a.Symbol]; ok {
			return nil, nil, configErrorf(cfg.field(), "symbol %q is already used by animation %q", a.Symbol, other)
		}
		symbols[a.Symbol] = a.Name

		for j, fc := range cfg.Frames {
			source := strings.ReplaceAll(fc.Path, "\\", "/")
			path := resolveFrame(root, source)

			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil, nil, &Error{Kind: ErrNotFound, Field: cfg.frameField(j), Path: path, Err: errors.New("animation frame not found")}
			}

			a.Frames[j] = &Frame{
				Symbol:   fmt.Sprintf("%s_frame_%d", a.Symbol, j),
				Duration: fc.Duration,
				Source:   source,
			}
			jobs = append(jobs, frameJob{
				animation: a,
				frame:     a.Frames[j],
				field:     cfg.frameField(j),
				path:      path,
				invert:    cfg.Invert,
			})
		}

		animations = append(animations, a)
	}

	return animations, jobs, nil
}

func findFrames(ctx context.Context, n int) (<-chan int, func() error) {
	out := make(chan int)
	return out, func() error {
		defer close(out)
		for i := 0; i < n; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
}

// frameWorker decodes every job it receives, even after the group has been
// cancelled, so every frame ahead of a failed one has been tried by the time
// the group returns.
func (g *Generator) frameWorker(in <-chan int, jobs []frameJob, errs []error) func() error {
	return func() error {
		for i := range in {
			b, err := g.decodeFrame(&jobs[i])
			if err != nil {
				errs[i] = err
				return err
			}
			jobs[i].frame.Bitmap = b
		}
		return nil
	}
}

// Load validates the manifest against root and decodes every frame. The
// result is in manifest order whatever order the frames finish decoding in,
// and on failure the error for the earliest failing frame is returned.
func (g *Generator) Load(ctx context.Context, m *Manifest, root string) ([]*Animation, error) {
	animations, jobs, err := g.prepare(m, root)
	if err != nil {
		return nil, err
	}

	eg, ctx := errgroup.WithContext(ctx)

	frames, producer := findFrames(ctx, len(jobs))
	eg.Go(producer)

	errs := make([]error, len(jobs))
	for i := 0; i < g.workers; i++ {
		eg.Go(g.frameWorker(frames, jobs, errs))
	}

	if err := eg.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, err
	}

	for _, a := range animations {
		g.logger.Printf("Loaded animation \"%s\" as \"%s\", %d frame(s) of %dx%d\n", a.Name, a.Symbol, len(a.Frames), a.Width, a.Height)
	}

	return animations, nil
}
