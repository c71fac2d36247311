package oledgen

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultWidth         = 128
	defaultHeight        = 64
	defaultFrameInterval = 90 * time.Millisecond
)

// maxMilliseconds is the largest millisecond count a time.Duration can hold
const maxMilliseconds = math.MaxInt64 / int64(time.Millisecond)

const (
	tagInt  = "!!int"
	tagBool = "!!bool"
	tagStr  = "!!str"
)

// Manifest is the parsed animation manifest. Animations are kept in the order
// they are declared.
type Manifest struct {
	Animations []AnimationConfig
}

// AnimationConfig is a single entry of the manifest animations mapping with
// all defaults applied.
type AnimationConfig struct {
	Name          string
	Width         int
	Height        int
	BitPacked     bool
	Invert        bool
	FrameInterval time.Duration
	Frames        []FrameConfig
}

// FrameConfig is a frame source path, relative to the asset root, and how
// long the frame is shown for.
type FrameConfig struct {
	Path     string
	Duration time.Duration
}

func (a *AnimationConfig) field() string {
	return "animations." + a.Name
}

func (a *AnimationConfig) frameField(i int) string {
	return fmt.Sprintf("%s.frames[%d]", a.field(), i)
}

// Validate checks the values of the animation, independent of where they
// came from.
func (a *AnimationConfig) Validate() error {
	if a.Name == "" {
		return configErrorf("animations", "animation names must be non-empty strings")
	}
	if a.Width <= 0 || a.Height <= 0 {
		return configErrorf(a.field(), "width/height must be > 0, got %dx%d", a.Width, a.Height)
	}
	if !a.BitPacked {
		return configErrorf(a.field()+".bit_packed", "only bit_packed=true is supported")
	}
	for i, f := range a.Frames {
		if f.Path == "" {
			return configErrorf(a.frameField(i)+".path", "must be a non-empty string")
		}
		if f.Duration <= 0 {
			return configErrorf(a.frameField(i)+".duration_ms", "must be > 0")
		}
	}
	return nil
}

// LoadManifest reads and parses the manifest in file.
func LoadManifest(file string) (*Manifest, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrNotFound, Field: "manifest", Path: file, Err: errors.New("manifest not found")}
		}
		return nil, err
	}
	return ParseManifest(b)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// lookup returns the value for key in the mapping n, or nil if it is absent
func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := resolve(n.Content[i]); k != nil && k.Kind == yaml.ScalarNode && k.Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

func scalar(n *yaml.Node, tag string) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == tag
}

// intField decodes the integer under key into dst, which points to an int or
// int64
func intField(n *yaml.Node, field, key string, dst any) error {
	v := lookup(n, key)
	if v == nil {
		return nil
	}
	if !scalar(v, tagInt) {
		return configErrorf(field+"."+key, "must be an integer")
	}
	if err := v.Decode(dst); err != nil {
		return configErrorf(field+"."+key, "must be an integer: %v", err)
	}
	return nil
}

// msField sets dst from the integer millisecond count under key, leaving it
// untouched if the key is absent
func msField(n *yaml.Node, field, key string, dst *time.Duration) error {
	ms := int64(*dst / time.Millisecond)
	if err := intField(n, field, key, &ms); err != nil {
		return err
	}
	if ms > maxMilliseconds || ms < -maxMilliseconds {
		return configErrorf(field+"."+key, "%d is out of range", ms)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

// YAML 1.1 spellings that plain scalars resolve to booleans, as older
// parsers do
var yaml11Bools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"on": true, "On": true, "ON": true,
	"no": false, "No": false, "NO": false,
	"off": false, "Off": false, "OFF": false,
}

const nonPlainStyle = yaml.TaggedStyle | yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle

func boolField(n *yaml.Node, field, key string, dst *bool) error {
	v := lookup(n, key)
	if v == nil {
		return nil
	}
	if scalar(v, tagStr) && v.Style&nonPlainStyle == 0 {
		if b, ok := yaml11Bools[v.Value]; ok {
			*dst = b
			return nil
		}
	}
	if !scalar(v, tagBool) {
		return configErrorf(field+"."+key, "must be a bool")
	}
	if err := v.Decode(dst); err != nil {
		return configErrorf(field+"."+key, "must be a bool: %v", err)
	}
	return nil
}

func parseFrame(a *AnimationConfig, i int, n *yaml.Node) (FrameConfig, error) {
	f := FrameConfig{
		Duration: a.FrameInterval,
	}

	switch {
	case scalar(n, tagStr):
		f.Path = n.Value
	case n != nil && n.Kind == yaml.MappingNode:
		p := lookup(n, "path")
		if !scalar(p, tagStr) || p.Value == "" {
			return f, configErrorf(a.frameField(i)+".path", "must be a non-empty string")
		}
		f.Path = p.Value

		if err := msField(n, a.frameField(i), "duration_ms", &f.Duration); err != nil {
			return f, err
		}
	default:
		return f, configErrorf(a.frameField(i), "must be a string or mapping")
	}

	return f, nil
}

func parseAnimation(name string, n *yaml.Node) (AnimationConfig, error) {
	a := AnimationConfig{
		Name:      name,
		Width:     defaultWidth,
		Height:    defaultHeight,
		BitPacked: true,
	}

	if n == nil || n.Kind != yaml.MappingNode {
		return a, configErrorf(a.field(), "must be a mapping")
	}

	if err := intField(n, a.field(), "width", &a.Width); err != nil {
		return a, err
	}
	if err := intField(n, a.field(), "height", &a.Height); err != nil {
		return a, err
	}
	if err := boolField(n, a.field(), "bit_packed", &a.BitPacked); err != nil {
		return a, err
	}
	if err := boolField(n, a.field(), "invert", &a.Invert); err != nil {
		return a, err
	}
	a.FrameInterval = defaultFrameInterval
	if err := msField(n, a.field(), "frame_interval_ms", &a.FrameInterval); err != nil {
		return a, err
	}

	frames := lookup(n, "frames")
	if frames == nil {
		return a, configErrorf(a.field()+".frames", "is required")
	}
	if frames.Kind != yaml.SequenceNode {
		return a, configErrorf(a.field()+".frames", "must be a list")
	}

	a.Frames = make([]FrameConfig, 0, len(frames.Content))
	for i, c := range frames.Content {
		f, err := parseFrame(&a, i, resolve(c))
		if err != nil {
			return a, err
		}
		a.Frames = append(a.Frames, f)
	}

	return a, a.Validate()
}

// ParseManifest parses a YAML manifest. The first invalid field found is
// reported as an ErrConfiguration *Error naming the field.
func ParseManifest(b []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &Error{Kind: ErrConfiguration, Field: "manifest", Err: err}
	}

	root := resolve(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, configErrorf("manifest", "root must be a mapping")
	}

	m := new(Manifest)

	animations := lookup(root, "animations")
	if animations == nil {
		return m, nil
	}
	if animations.Kind != yaml.MappingNode {
		return nil, configErrorf("animations", "must be a mapping")
	}

	seen := make(map[string]struct{})
	for i := 0; i+1 < len(animations.Content); i += 2 {
		k := resolve(animations.Content[i])
		if !scalar(k, tagStr) || k.Value == "" {
			return nil, configErrorf("animations", "animation names must be non-empty strings")
		}
		if _, ok := seen[k.Value]; ok {
			return nil, configErrorf("animations."+k.Value, "declared more than once")
		}
		seen[k.Value] = struct{}{}

		a, err := parseAnimation(k.Value, resolve(animations.Content[i+1]))
		if err != nil {
			return nil, err
		}
		m.Animations = append(m.Animations, a)
	}

	return m, nil
}
