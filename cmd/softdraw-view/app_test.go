package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/internal/ui"
	"github.com/gogpu/softdraw/text"
)

func pixel(buf []byte, width, x, y int) softdraw.RGBA8 {
	i := (y*width + x) * softdraw.BytesPerPixel
	return softdraw.RGBA8{B: buf[i], G: buf[i+1], R: buf[i+2], A: buf[i+3]}
}

func TestAppFrameNumbers(t *testing.T) {
	var got []int
	a := newApp(4, 4, func(s *softdraw.Surface, n int) error {
		got = append(got, n)
		return nil
	}, nil)
	for range 3 {
		if _, err := a.render(); err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("frame numbers = %v", got)
	}
}

func TestAppRenderError(t *testing.T) {
	want := errors.New("boom")
	a := newApp(2, 2, func(s *softdraw.Surface, _ int) error {
		s.Fill(softdraw.RGB8(255, 0, 0))
		return want
	}, nil)
	buf, err := a.render()
	if !errors.Is(err, want) {
		t.Errorf("render() error = %v, want %v", err, want)
	}
	if p := pixel(buf, 2, 1, 1); p.R != 255 || p.A != 255 {
		t.Errorf("pixel = %+v, want opaque red", p)
	}
}

func TestAppSwapReleases(t *testing.T) {
	released := 0
	paint := func(s *softdraw.Surface, _ int) error { return nil }
	a := newApp(2, 2, paint, func() { released++ })

	a.swap(paint, func() { released += 10 })
	if released != 1 {
		t.Fatalf("released = %d after swap, want 1", released)
	}
	a.close()
	if released != 11 {
		t.Fatalf("released = %d after close, want 11", released)
	}
	if _, err := a.render(); err != nil {
		t.Errorf("render() after close error = %v", err)
	}
}

func TestAppDemoClose(t *testing.T) {
	face, err := text.DefaultSource().Face(12)
	if err != nil {
		t.Fatal(err)
	}
	a := newDemoApp(320, 240, ui.NewDemo(face))
	if _, err := a.render(); err != nil {
		t.Fatal(err)
	}
	if a.closeRequested() {
		t.Fatal("close requested before any input")
	}

	a.pointer(320-ui.ButtonWidth/2, ui.HeaderHeight/2)
	a.button(true)
	a.button(false)
	if !a.closeRequested() {
		t.Error("clicking the close button did not request close")
	}
}

func TestAppInputWithoutDemo(t *testing.T) {
	a := newApp(2, 2, func(*softdraw.Surface, int) error { return nil }, nil)
	a.pointer(1, 1)
	a.button(true)
	a.button(false)
	if a.closeRequested() {
		t.Error("closeRequested() = true without a demo")
	}
}

func TestLoadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wantW int
		wantH int
	}{
		{"scene", filepath.Join("..", "..", "internal", "scene", "testdata", "panel.toml"), 64, 32},
		{"script", filepath.Join("..", "..", "internal", "script", "testdata", "counter.lua"), 320, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := loadInput(tt.input, options{fontSize: 12, scaleX: 1})
			if err != nil {
				t.Fatalf("loadInput() error = %v", err)
			}
			if l.release != nil {
				defer l.release()
			}
			if l.width != tt.wantW || l.height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", l.width, l.height, tt.wantW, tt.wantH)
			}
			if len(l.deps) != 1 || l.deps[0] != tt.input {
				t.Errorf("deps = %v", l.deps)
			}
			a := newApp(l.width, l.height, l.paint, nil)
			if _, err := a.render(); err != nil {
				t.Errorf("render() error = %v", err)
			}
		})
	}
}

func TestSize(t *testing.T) {
	if got := size(0, 320); got != 320 {
		t.Errorf("size(0, 320) = %d", got)
	}
	if got := size(100, 320); got != 100 {
		t.Errorf("size(100, 320) = %d", got)
	}
}
