package ui

import (
	"testing"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

func testFace(t *testing.T) *text.Face {
	t.Helper()
	f, err := text.DefaultSource().Face(12)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func newSurface(t *testing.T, w, h int) *softdraw.Surface {
	t.Helper()
	s, err := softdraw.NewSurface(make([]byte, w*h*softdraw.BytesPerPixel), w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func rgb(r, g, b uint8) softdraw.RGBA8 {
	return softdraw.RGBA8{R: r, G: g, B: b, A: 255}
}

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		name string
		got  softdraw.RGBA
		want softdraw.RGBA8
	}{
		{"primary active", th.Primary(true), rgb(0x22, 0x22, 0x22)},
		{"primary inactive", th.Primary(false), rgb(0x33, 0x33, 0x33)},
		{"secondary active", th.Secondary(true), rgb(0xff, 0xff, 0xff)},
		{"secondary inactive", th.Secondary(false), rgb(0xff, 0xff, 0xff)},
		{"close idle", th.CloseButtonColor(ButtonIdle), rgb(0x88, 0, 0)},
		{"close hovered", th.CloseButtonColor(ButtonHovered), rgb(0xff, 0, 0)},
		{"close disabled", th.CloseButtonColor(ButtonDisabled), rgb(0x88, 0, 0)},
		{"close icon idle", th.CloseButtonIconColor(ButtonIdle), rgb(0xff, 0xff, 0xff)},
		{"close icon hovered", th.CloseButtonIconColor(ButtonHovered), rgb(0x22, 0x22, 0x22)},
		{"close icon disabled", th.CloseButtonIconColor(ButtonDisabled), rgb(0x88, 0, 0)},
		{"maximize idle", th.MaximizeButtonColor(ButtonIdle), rgb(0, 0x88, 0)},
		{"maximize hovered", th.MaximizeButtonColor(ButtonHovered), rgb(0, 0xff, 0)},
		{"minimize idle", th.MinimizeButtonColor(ButtonIdle), rgb(0, 0, 0x88)},
		{"minimize hovered", th.MinimizeButtonColor(ButtonHovered), rgb(0, 0, 0xff)},
	}
	for _, tt := range tests {
		if got := tt.got.Bytes(); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHitDecoration(t *testing.T) {
	tests := []struct {
		x, y float64
		want Part
	}{
		{0, 0, PartTitle},
		{247, 5, PartTitle},
		{248, 5, PartMinimize},
		{271, 5, PartMinimize},
		{272, 5, PartMaximize},
		{295, 5, PartMaximize},
		{296, 5, PartClose},
		{319, 0, PartClose},
		{319.9, 22.5, PartClose},
		{319, 23, PartTitle},
		{10, 23, PartTitle},
		{10, 24, PartContent},
		{319, 239, PartContent},
		{-1, 0, PartNone},
		{320, 0, PartNone},
		{0, 240, PartNone},
	}
	for _, tt := range tests {
		if got := HitDecoration(320, 240, softdraw.Pt(tt.x, tt.y)); got != tt.want {
			t.Errorf("HitDecoration(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawDecoration(t *testing.T) {
	face := testFace(t)
	tests := []struct {
		name   string
		deco   Decoration
		pixels map[[2]int]softdraw.RGBA8
	}{
		{
			name: "active close hovered",
			deco: Decoration{Title: DemoTitle, Active: true, Hover: PartClose, Theme: DefaultTheme(), Face: face},
			pixels: map[[2]int]softdraw.RGBA8{
				{200, 5}:  rgb(0x22, 0x22, 0x22),
				{300, 1}:  rgb(0xff, 0, 0),
				{307, 11}: rgb(0x22, 0x22, 0x22),
				{273, 1}:  rgb(0, 0x88, 0),
				{249, 1}:  rgb(0, 0, 0x88),
				{0, 23}:   rgb(0xff, 0xff, 0xff),
				{319, 23}: rgb(0xff, 0xff, 0xff),
				{5, 24}:   {},
			},
		},
		{
			name: "inactive idle",
			deco: Decoration{Title: DemoTitle, Theme: DefaultTheme(), Face: face},
			pixels: map[[2]int]softdraw.RGBA8{
				{200, 5}:  rgb(0x33, 0x33, 0x33),
				{300, 1}:  rgb(0x88, 0, 0),
				{307, 11}: rgb(0xff, 0xff, 0xff),
			},
		},
		{
			name: "disabled close hides icon",
			deco: Decoration{Active: true, Hover: PartClose, Disabled: []Part{PartClose}, Theme: DefaultTheme()},
			pixels: map[[2]int]softdraw.RGBA8{
				{300, 1}:  rgb(0x88, 0, 0),
				{307, 11}: rgb(0x88, 0, 0),
			},
		},
		{
			name: "maximize hovered",
			deco: Decoration{Active: true, Hover: PartMaximize, Theme: DefaultTheme()},
			pixels: map[[2]int]softdraw.RGBA8{
				{273, 1}: rgb(0, 0xff, 0),
				{300, 1}: rgb(0x88, 0, 0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSurface(t, 320, 40)
			if err := DrawDecoration(s, tt.deco); err != nil {
				t.Fatalf("DrawDecoration() error = %v", err)
			}
			for p, want := range tt.pixels {
				if got := s.Pixel(p[0], p[1]); got != want {
					t.Errorf("Pixel(%d, %d) = %v, want %v", p[0], p[1], got, want)
				}
			}
			if _, clipped := s.Clip(); clipped {
				t.Error("DrawDecoration left a clip behind")
			}
		})
	}
}

func TestDecorationTitle(t *testing.T) {
	s := newSurface(t, 320, 40)
	bg := rgb(0x22, 0x22, 0x22)
	err := DrawDecoration(s, Decoration{Title: DemoTitle, Active: true, Theme: DefaultTheme(), Face: testFace(t)})
	if err != nil {
		t.Fatal(err)
	}
	inked := false
	for y := range 23 {
		for x := 8; x < 100; x++ {
			if s.Pixel(x, y) != bg {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("title drew nothing")
	}
}

// counterButton returns the center of the counter's increment button.
func counterButton(face *text.Face) softdraw.Point {
	w, h := face.Measure("increment")
	at := CounterWindowPos.Add(CounterButtonPos)
	return softdraw.Pt(at.X+(w+2*buttonPadding)/2, at.Y+(h+2*buttonPadding)/2)
}

func TestCounterClick(t *testing.T) {
	face := testFace(t)
	button := counterButton(face)
	outside := softdraw.Pt(60, 60)

	tests := []struct {
		name    string
		press   softdraw.Point
		release softdraw.Point
		want    int
	}{
		{"click", button, button, 1},
		{"drag off", button, outside, 0},
		{"drag on", outside, button, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := New(face, DefaultTheme())
			c := NewCounter(u)
			s := newSurface(t, 320, 240)
			if err := c.Paint(s); err != nil {
				t.Fatal(err)
			}

			u.MouseMove(tt.press)
			u.MouseButton(true)
			u.MouseMove(tt.release)
			u.MouseButton(false)
			for range 2 {
				if err := c.Paint(s); err != nil {
					t.Fatal(err)
				}
			}
			if c.Count() != tt.want {
				t.Errorf("Count() = %d, want %d", c.Count(), tt.want)
			}
		})
	}
}

func TestCounterWindow(t *testing.T) {
	s := newSurface(t, 320, 240)
	c := NewCounter(New(testFace(t), DefaultTheme()))
	if err := c.Paint(s); err != nil {
		t.Fatal(err)
	}

	white := rgb(0xff, 0xff, 0xff)
	tests := []struct {
		name string
		x, y int
		want softdraw.RGBA8
	}{
		{"border top-left", 50, 50, white},
		{"border bottom-right", 250, 150, white},
		{"interior", 55, 140, rgb(0x22, 0x22, 0x22)},
		{"outside", 49, 49, softdraw.RGBA8{}},
		{"outside right", 251, 100, softdraw.RGBA8{}},
	}
	for _, tt := range tests {
		if got := s.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Pixel(%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
	if _, clipped := s.Clip(); clipped {
		t.Error("Window left a clip behind")
	}
}

func TestButtonHover(t *testing.T) {
	face := testFace(t)
	u := New(face, DefaultTheme())
	c := NewCounter(u)

	corner := CounterWindowPos.Add(CounterButtonPos).Add(softdraw.Pt(1, 1))
	idle := newSurface(t, 320, 240)
	if err := c.Paint(idle); err != nil {
		t.Fatal(err)
	}
	u.MouseMove(counterButton(face))
	hovered := newSurface(t, 320, 240)
	if err := c.Paint(hovered); err != nil {
		t.Fatal(err)
	}

	x, y := int(corner.X), int(corner.Y)
	if idle.Pixel(x, y) != rgb(0x33, 0x33, 0x33) {
		t.Errorf("idle button = %v", idle.Pixel(x, y))
	}
	if hovered.Pixel(x, y).R <= idle.Pixel(x, y).R {
		t.Errorf("hovered button %v not lighter than idle %v", hovered.Pixel(x, y), idle.Pixel(x, y))
	}
}

func TestDemo(t *testing.T) {
	face := testFace(t)
	d := NewDemo(face)
	s := newSurface(t, 320, 240)
	if err := d.Paint(s); err != nil {
		t.Fatal(err)
	}
	if got := s.Pixel(10, 200); got != (softdraw.RGBA8{A: 255}) {
		t.Errorf("background = %v, want black", got)
	}

	// Clicking the counter does not close.
	d.MouseMove(counterButton(face))
	d.MouseButton(true)
	d.MouseButton(false)
	if err := d.Paint(s); err != nil {
		t.Fatal(err)
	}
	if d.Count() != 1 || d.CloseRequested() {
		t.Fatalf("Count() = %d, CloseRequested() = %v after a counter click", d.Count(), d.CloseRequested())
	}

	d.MouseMove(softdraw.Pt(307, 11))
	if err := d.Paint(s); err != nil {
		t.Fatal(err)
	}
	if got := s.Pixel(300, 1); got != rgb(0xff, 0, 0) {
		t.Errorf("hovered close = %v, want bright red", got)
	}
	d.MouseButton(true)
	d.MouseButton(false)
	if !d.CloseRequested() {
		t.Error("close click not reported")
	}

	d.SetActive(false)
	if err := d.Paint(s); err != nil {
		t.Fatal(err)
	}
	if got := s.Pixel(200, 5); got != rgb(0x33, 0x33, 0x33) {
		t.Errorf("inactive title bar = %v", got)
	}
}

func TestStrings(t *testing.T) {
	if ButtonHovered.String() != "hovered" || ButtonState(9).String() != "unknown" {
		t.Error("ButtonState.String")
	}
	if PartClose.String() != "close" || Part(42).String() != "unknown" {
		t.Error("Part.String")
	}
}
