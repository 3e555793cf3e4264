// Package script drives a Surface from Lua.
//
// A script defines a global function
//
//	function draw(width, height, frame) ... end
//
// which is called once per frame with hard CPU and memory limits. Inside
// draw the script paints with the functions below. Colors are either a
// string accepted by softdraw.ParseColor or a table {r, g, b[, a]} with
// components in [0, 1], such as the one rgba returns.
//
//	fill(color)
//	set_clip(x, y, w, h)
//	reset_clip()
//	draw_line(x1, y1, x2, y2, color)         -> true | false, message
//	draw_rect(x, y, w, h, stroke[, fill])    -- stroke may be nil
//	draw_label(text, x, y, color[, size])    -> width, height
//	measure_label(text[, size])              -> width, height
//	rgba(r, g, b[, a])                       -> color table
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/text"
)

// DefaultFontSize is the label size used when Config.FontSize is zero.
const DefaultFontSize = 12

// Config controls the Lua runtime and label rendering.
type Config struct {
	// CPULimit is the instruction budget for one draw call. 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the allocation budget in bytes for one draw call.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives Lua print output. Nil discards it.
	Stdout io.Writer

	// Source is the font for labels. Nil uses text.DefaultSource.
	Source *text.FontSource
	// FontSize is the default label size in pixels.
	FontSize float64
	// FaceOptions apply to every face the script creates.
	FaceOptions []text.FaceOption
}

// DefaultConfig returns limits of 10M instructions and 50 MB per frame.
func DefaultConfig() Config {
	return Config{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
		FontSize:    DefaultFontSize,
	}
}

// Script is a loaded Lua program. Draw calls are serialized.
type Script struct {
	name    string
	cfg     Config
	runtime *rt.Runtime
	cleanup func()
	draw    rt.Value

	mu     sync.Mutex
	target *softdraw.Surface
	faces  map[float64]*text.Face
	closed bool
}

// Load reads and runs the Lua file at path.
func Load(path string, cfg Config) (*Script, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return LoadString(path, string(code), cfg)
}

// LoadString runs code as the main chunk of a new runtime. The chunk must
// leave a global draw function behind.
func LoadString(name, code string, cfg Config) (*Script, error) {
	if cfg.Source == nil {
		cfg.Source = text.DefaultSource()
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	r := rt.New(stdout)
	sc := &Script{
		name:    name,
		cfg:     cfg,
		runtime: r,
		cleanup: lib.LoadAll(r),
		faces:   make(map[float64]*text.Face),
	}
	sc.registerFunctions()

	chunk, err := r.CompileAndLoadLuaChunk(name, []byte(code), rt.TableValue(r.GlobalEnv()))
	if err != nil {
		sc.Close()
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	if err := sc.call(rt.FunctionValue(chunk)); err != nil {
		sc.Close()
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}

	sc.draw = r.GlobalEnv().Get(rt.StringValue("draw"))
	if sc.draw.Type() != rt.FunctionType {
		sc.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoDraw, name)
	}
	softdraw.Logger().Debug("script: loaded", "name", name)
	return sc, nil
}

// Name returns the name the script was loaded under.
func (sc *Script) Name() string {
	return sc.name
}

// Draw calls the script's draw(width, height, frame) against s. A call
// that exceeds its limits closes the script.
func (sc *Script) Draw(s *softdraw.Surface, frame int) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.closed {
		return ErrClosed
	}

	sc.target = s
	defer func() { sc.target = nil }()

	err := sc.call(sc.draw,
		rt.IntValue(int64(s.Width())),
		rt.IntValue(int64(s.Height())),
		rt.IntValue(int64(frame)),
	)
	switch {
	case errors.Is(err, ErrLimit):
		softdraw.Logger().Warn("script: limit exceeded, closing", "name", sc.name, "err", err)
		sc.closeLocked()
	case errors.Is(err, ErrPanic):
		softdraw.Logger().Error("script: binding panicked, closing", "name", sc.name, "err", err)
		sc.closeLocked()
	}
	if err != nil {
		return fmt.Errorf("script: %s: draw: %w", sc.name, err)
	}
	return nil
}

// Frame returns frame n of the script as a softdraw.Frame.
func (sc *Script) Frame(n int) softdraw.Frame {
	return softdraw.FrameFunc(func(s *softdraw.Surface) error {
		return sc.Draw(s, n)
	})
}

// Close releases the runtime. Draw fails afterwards.
func (sc *Script) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.closeLocked()
	return nil
}

func (sc *Script) closeLocked() {
	sc.closed = true
	if sc.cleanup != nil {
		sc.cleanup()
		sc.cleanup = nil
	}
}

// call runs fn on the main thread within the configured limits. golua
// panics with a ContextTerminationError when a hard limit is hit; that
// comes back as ErrLimit. Any other panic comes back as ErrPanic.
func (sc *Script) call(fn rt.Value, args ...rt.Value) (err error) {
	sc.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    sc.cfg.CPULimit,
			Memory: sc.cfg.MemoryLimit,
		},
	})
	defer sc.runtime.PopContext()
	defer func() {
		if r := recover(); r != nil {
			if cterr, ok := r.(rt.ContextTerminationError); ok {
				err = fmt.Errorf("%w: %v", ErrLimit, cterr)
				return
			}
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	_, err = rt.Call1(sc.runtime.MainThread(), fn, args...)
	return err
}

// face returns the face for size, 0 meaning the configured default.
func (sc *Script) face(size float64) (*text.Face, error) {
	if size == 0 {
		size = sc.cfg.FontSize
	}
	if f, ok := sc.faces[size]; ok {
		return f, nil
	}
	f, err := sc.cfg.Source.Face(size, sc.cfg.FaceOptions...)
	if err != nil {
		return nil, err
	}
	sc.faces[size] = f
	return f, nil
}
