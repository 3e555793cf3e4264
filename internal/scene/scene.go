// Package scene reads declarative frame descriptions and paints them onto a
// softdraw.Surface.
//
// A scene is a TOML or YAML document:
//
//	width = 320
//	height = 240
//
//	[font]
//	size = 12.4
//	scale_x = 2
//
//	[palette]
//	panel = "#222222"
//
//	[[op]]
//	kind = "fill"
//	color = "panel"
//
//	[[op]]
//	kind = "label"
//	at = [8, 8]
//	text = "Counter: 0"
//	color = "white"
//
// Commands run in document order. Colors are palette names, common color
// names or hex strings.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

// Default frame size, matching the initial window of the viewer.
const (
	DefaultWidth    = 320
	DefaultHeight   = 240
	DefaultFontSize = 12
)

// Format is a scene document encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Document is the decoded form of a scene file.
type Document struct {
	Width   int               `toml:"width" yaml:"width"`
	Height  int               `toml:"height" yaml:"height"`
	Font    Font              `toml:"font" yaml:"font"`
	Palette map[string]string `toml:"palette" yaml:"palette"`
	Ops     []Op              `toml:"op" yaml:"ops"`
}

// Font selects the face used by label commands.
type Font struct {
	// Path is a TrueType/OpenType file, relative to the scene file.
	// Empty means the embedded Go Mono.
	Path      string  `toml:"path" yaml:"path"`
	Size      float64 `toml:"size" yaml:"size"`
	ScaleX    float64 `toml:"scale_x" yaml:"scale_x"`
	Direction string  `toml:"direction" yaml:"direction"`
	// Shaper is "builtin" (default) or "gotext".
	Shaper string `toml:"shaper" yaml:"shaper"`
}

// Op is one drawing command. Which fields apply depends on Kind:
//
//	fill    color
//	clip    rect
//	unclip
//	line    from, to, color
//	rect    rect, stroke and/or fill
//	label   at, text, color, size (optional)
type Op struct {
	Kind   string    `toml:"kind" yaml:"kind"`
	Color  string    `toml:"color,omitempty" yaml:"color,omitempty"`
	Stroke string    `toml:"stroke,omitempty" yaml:"stroke,omitempty"`
	Fill   string    `toml:"fill,omitempty" yaml:"fill,omitempty"`
	From   []float64 `toml:"from,omitempty" yaml:"from,omitempty"`
	To     []float64 `toml:"to,omitempty" yaml:"to,omitempty"`
	At     []float64 `toml:"at,omitempty" yaml:"at,omitempty"`
	Rect   []float64 `toml:"rect,omitempty" yaml:"rect,omitempty"`
	Text   string    `toml:"text,omitempty" yaml:"text,omitempty"`
	Size   float64   `toml:"size,omitempty" yaml:"size,omitempty"`
}

// Scene is a parsed document ready to paint. It implements softdraw.Frame.
// A Scene may be painted any number of times, from one goroutine at a time.
type Scene struct {
	doc     Document
	palette map[string]softdraw.RGBA
	source  *text.FontSource
	faceCfg []text.FaceOption

	fontPath string

	mu    sync.Mutex
	faces map[float64]*text.Face
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return parse(data, format, filepath.Dir(path))
}

// Parse decodes a scene document. Font paths are resolved against the
// current directory.
func Parse(data []byte, format Format) (*Scene, error) {
	return parse(data, format, ".")
}

func parse(data []byte, format Format, dir string) (*Scene, error) {
	var doc Document
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	if doc.Width == 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height == 0 {
		doc.Height = DefaultHeight
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadArgs, doc.Width, doc.Height)
	}
	if doc.Font.Size == 0 {
		doc.Font.Size = DefaultFontSize
	}

	sc := &Scene{
		doc:     doc,
		palette: make(map[string]softdraw.RGBA, len(doc.Palette)),
		faces:   make(map[float64]*text.Face),
	}
	for name, v := range doc.Palette {
		c, err := softdraw.ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("scene: palette %q: %w", name, err)
		}
		sc.palette[name] = c
	}
	if err := sc.loadFont(dir); err != nil {
		return nil, err
	}
	// Catch a bad default size before the first frame.
	if _, err := sc.face(0); err != nil {
		return nil, fmt.Errorf("scene: font: %w", err)
	}
	return sc, nil
}

func decode(data []byte, format Format, doc *Document) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return fmt.Errorf("scene: toml %d:%d: %w", row, col, err)
			}
			return fmt.Errorf("scene: toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("scene: yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrFormat, format)
	}
	return nil
}

func (sc *Scene) loadFont(dir string) error {
	f := sc.doc.Font

	var opts []text.SourceOption
	switch strings.ToLower(f.Shaper) {
	case "", "builtin":
	case "gotext", "harfbuzz":
		opts = append(opts, text.WithShaper(text.NewGoTextShaper()))
	default:
		return fmt.Errorf("%w: font shaper %q", ErrBadArgs, f.Shaper)
	}

	direction, ok := text.ParseDirection(f.Direction)
	if !ok {
		return fmt.Errorf("%w: font direction %q", ErrBadArgs, f.Direction)
	}
	sc.faceCfg = append(sc.faceCfg, text.WithDirection(direction))
	if f.ScaleX != 0 {
		sc.faceCfg = append(sc.faceCfg, text.WithScaleX(f.ScaleX))
	}

	switch {
	case f.Path != "":
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		src, err := text.NewFontSourceFromFile(path, opts...)
		if err != nil {
			return fmt.Errorf("scene: font: %w", err)
		}
		sc.source = src
		sc.fontPath = path
	case len(opts) > 0:
		src, err := text.NewFontSource(text.DefaultSource().Data(), opts...)
		if err != nil {
			return fmt.Errorf("scene: font: %w", err)
		}
		sc.source = src
	default:
		sc.source = text.DefaultSource()
	}
	return nil
}

// face returns the face for a label size; 0 selects the document size.
func (sc *Scene) face(size float64) (*text.Face, error) {
	if size == 0 {
		size = sc.doc.Font.Size
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if f, ok := sc.faces[size]; ok {
		return f, nil
	}
	f, err := sc.source.Face(size, sc.faceCfg...)
	if err != nil {
		return nil, err
	}
	sc.faces[size] = f
	return f, nil
}

// Size returns the frame size the document asks for.
func (sc *Scene) Size() (width, height int) {
	return sc.doc.Width, sc.doc.Height
}

// Document returns the decoded document with defaults applied.
func (sc *Scene) Document() Document {
	return sc.doc
}

// FontPath returns the resolved path of the document's font file, or ""
// when the embedded font is used.
func (sc *Scene) FontPath() string {
	return sc.fontPath
}

// Len returns the number of commands.
func (sc *Scene) Len() int {
	return len(sc.doc.Ops)
}
