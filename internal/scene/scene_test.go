package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/softdraw"
)

func render(t *testing.T, sc *Scene) (*softdraw.Surface, error) {
	t.Helper()
	w, h := sc.Size()
	s, err := softdraw.NewSurface(make([]byte, w*h*softdraw.BytesPerPixel), w, h)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) error = %v", w, h, err)
	}
	return s, sc.Paint(s)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func mustLoad(t *testing.T, path string) *Scene {
	t.Helper()
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	return sc
}

func TestLoadPanel(t *testing.T) {
	sc := mustLoad(t, filepath.Join("testdata", "panel.toml"))
	if w, h := sc.Size(); w != 64 || h != 32 {
		t.Fatalf("Size() = %dx%d, want 64x32", w, h)
	}
	if sc.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", sc.Len())
	}

	s, err := render(t, sc)
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}

	panel := softdraw.RGBA8{R: 0x22, G: 0x22, B: 0x22, A: 255}
	white := softdraw.RGBA8{R: 255, G: 255, B: 255, A: 255}
	accent, _ := softdraw.ParseColor("#ff000080")
	tests := []struct {
		name string
		x, y int
		want softdraw.RGBA8
	}{
		{"background", 0, 0, panel},
		{"stroke corner", 4, 4, white},
		{"stroke edge", 24, 9, white},
		{"fill", 10, 10, softdraw.Composite(panel, accent)},
		{"outside rect", 25, 10, panel},
		{"line", 10, 30, softdraw.RGBA8{G: 255, A: 255}},
		{"line end", 63, 30, softdraw.RGBA8{G: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := s.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Pixel(%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	inked := false
	for y := 1; y < 30; y++ {
		for x := 30; x < 64; x++ {
			if s.Pixel(x, y) != panel {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("label drew nothing")
	}
}

func TestYAMLMatchesTOML(t *testing.T) {
	a, err := render(t, mustLoad(t, filepath.Join("testdata", "panel.toml")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := render(t, mustLoad(t, filepath.Join("testdata", "panel.yaml")))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("YAML and TOML versions of the same scene render differently")
	}
}

func TestParseDefaults(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML} {
		sc, err := Parse(nil, f)
		if err != nil {
			t.Fatalf("Parse(empty, %v) error = %v", f, err)
		}
		if w, h := sc.Size(); w != DefaultWidth || h != DefaultHeight {
			t.Errorf("%v: Size() = %dx%d, want %dx%d", f, w, h, DefaultWidth, DefaultHeight)
		}
		if sc.Document().Font.Size != DefaultFontSize {
			t.Errorf("%v: font size = %v", f, sc.Document().Font.Size)
		}
		if sc.Len() != 0 {
			t.Errorf("%v: Len() = %d", f, sc.Len())
		}
	}
}

func TestPaintReportsBadCommands(t *testing.T) {
	doc := `
width = 16
height = 16

[[op]]
kind = "fill"
color = "black"

[[op]]
kind = "circle"

[[op]]
kind = "line"
from = [0, 0]
to = [5, 5]
color = "white"

[[op]]
kind = "line"
from = [0, 3]
color = "white"

[[op]]
kind = "rect"
rect = [1, 1, 4, 4]
fill = "nope"

[[op]]
kind = "line"
from = [0, 8]
to = [15, 8]
color = "white"
`
	sc, err := Parse([]byte(doc), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s, err := render(t, sc)
	if err == nil {
		t.Fatal("Paint() error = nil, want joined command errors")
	}

	var cerr *CommandError
	if !errors.As(err, &cerr) || cerr.Index != 1 || cerr.Kind != "circle" {
		t.Errorf("first CommandError = %+v, want op 1 (circle)", cerr)
	}
	for _, target := range []error{ErrUnknownOp, softdraw.ErrUnsupportedGeometry, ErrBadArgs, softdraw.ErrInvalidColor} {
		if !errors.Is(err, target) {
			t.Errorf("Paint() error does not match %v", target)
		}
	}

	// Commands after the failures still run.
	if got := s.Pixel(15, 8); got != (softdraw.RGBA8{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("last line not drawn: Pixel(15, 8) = %v", got)
	}
	// The diagonal drew nothing.
	if got := s.Pixel(2, 2); got != (softdraw.RGBA8{A: 255}) {
		t.Errorf("diagonal line painted Pixel(2, 2) = %v", got)
	}
}

func TestClipCommands(t *testing.T) {
	doc := `
width = 20
height = 4

[[op]]
kind = "fill"
color = "black"

[[op]]
kind = "clip"
rect = [5, 0, 4, 3]

[[op]]
kind = "line"
from = [0, 1]
to = [19, 1]
color = "white"

[[op]]
kind = "unclip"

[[op]]
kind = "line"
from = [0, 2]
to = [19, 2]
color = "red"
`
	sc, err := Parse([]byte(doc), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	s, err := render(t, sc)
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}

	white := 0
	for x := range 20 {
		if s.Pixel(x, 1).R == 255 {
			white++
			if x < 5 || x > 9 {
				t.Errorf("clipped line painted x=%d", x)
			}
		}
	}
	if white != 5 {
		t.Errorf("clipped line painted %d pixels, want 5 (inclusive clip)", white)
	}
	if s.Pixel(0, 2).R != 255 || s.Pixel(19, 2).R != 255 {
		t.Error("line after unclip was clipped")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		target error
	}{
		{"unknown field", "widht = 10", FormatTOML, nil},
		{"unknown yaml field", "colour: red", FormatYAML, nil},
		{"bad palette", "[palette]\nbg = \"#zzz\"", FormatTOML, softdraw.ErrInvalidColor},
		{"bad shaper", "[font]\nshaper = \"pango\"", FormatTOML, ErrBadArgs},
		{"bad direction", "[font]\ndirection = \"ttb\"", FormatTOML, ErrBadArgs},
		{"negative size", "width = -1", FormatTOML, ErrBadArgs},
		{"bad font size", "[font]\nsize = -3", FormatTOML, nil},
		{"malformed toml", "width = ", FormatTOML, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Parse() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoadMissingFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.toml")
	writeFile(t, path, "[font]\npath = \"missing.ttf\"\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() with a missing font succeeded")
	}
}

func TestLoadRelativeFont(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f.ttf"), string(goregular.TTF))
	path := filepath.Join(dir, "s.toml")
	writeFile(t, path, "[font]\npath = \"f.ttf\"\n")

	sc := mustLoad(t, path)
	if got, want := sc.FontPath(), filepath.Join(dir, "f.ttf"); got != want {
		t.Errorf("FontPath() = %q, want %q", got, want)
	}
	if _, err := render(t, sc); err != nil {
		t.Fatal(err)
	}

	builtin, err := Parse(nil, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if builtin.FontPath() != "" {
		t.Errorf("FontPath() = %q for the embedded font", builtin.FontPath())
	}
}

func TestLabelSizesShareFaces(t *testing.T) {
	doc := `
[[op]]
kind = "label"
at = [0, 0]
text = "a"
color = "white"
size = 20

[[op]]
kind = "label"
at = [0, 30]
text = "b"
color = "white"
size = 20

[[op]]
kind = "label"
at = [0, 60]
text = "c"
color = "white"
`
	sc, err := Parse([]byte(doc), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := render(t, sc); err != nil {
		t.Fatal(err)
	}
	if n := len(sc.faces); n != 2 {
		t.Errorf("cached faces = %d, want 2 (default and 20px)", n)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.toml", FormatTOML, true},
		{"dir/B.TOML", FormatTOML, true},
		{"a.yaml", FormatYAML, true},
		{"a.yml", FormatYAML, true},
		{"a.lua", 0, false},
		{"noext", 0, false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.ok != (err == nil) {
			t.Errorf("FormatFromPath(%q) error = %v", tt.path, err)
			continue
		}
		if !tt.ok && !errors.Is(err, ErrFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
