// Command softdraw-view shows a scene, a Lua script or the built-in counter
// demo in a window.
//
// Usage:
//
//	softdraw-view [flags] [input]
//
// Without an input, or with -demo, the decorated counter window is shown.
// Inputs are reloaded when they change on disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/internal/scene"
	"github.com/gogpu/softdraw/internal/script"
	"github.com/gogpu/softdraw/internal/ui"
	"github.com/gogpu/softdraw/internal/watch"
	"github.com/gogpu/softdraw/text"
)

type options struct {
	backend  string
	width    int
	height   int
	fps      int
	scale    int
	fontPath string
	fontSize float64
	scaleX   float64
}

func main() {
	var (
		opts    options
		demo    = flag.Bool("demo", false, "show the counter demo")
		watchIt = flag.Bool("watch", true, "reload the input when it changes")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.StringVar(&opts.backend, "backend", "ebiten", "window backend: ebiten or x11")
	flag.IntVar(&opts.width, "width", 0, "window width (default: from the scene, or 320)")
	flag.IntVar(&opts.height, "height", 0, "window height (default: from the scene, or 240)")
	flag.IntVar(&opts.fps, "fps", 30, "frames per second for the x11 backend")
	flag.IntVar(&opts.scale, "scale", 2, "window scale for the ebiten backend")
	flag.StringVar(&opts.fontPath, "font", "", "font file (default: embedded Go Mono)")
	flag.Float64Var(&opts.fontSize, "size", 12.4, "font size")
	flag.Float64Var(&opts.scaleX, "scalex", 1, "horizontal glyph scale")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	softdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		a     *app
		title string
		deps  []string
	)
	switch {
	case *demo || flag.NArg() == 0:
		face, err := loadFace(opts)
		if err != nil {
			log.Fatalf("softdraw-view: %v", err)
		}
		a = newDemoApp(size(opts.width, scene.DefaultWidth), size(opts.height, scene.DefaultHeight), ui.NewDemo(face))
		title = ui.DemoTitle
	case flag.NArg() == 1:
		input := flag.Arg(0)
		l, err := loadInput(input, opts)
		if err != nil {
			log.Fatalf("softdraw-view: %v", err)
		}
		a = newApp(size(opts.width, l.width), size(opts.height, l.height), l.paint, l.release)
		title = "softdraw - " + filepath.Base(input)
		deps = l.deps
		if *watchIt {
			go reload(ctx, a, input, deps, opts)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: softdraw-view [flags] [input.{toml,yaml,lua}]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	defer a.close()

	var err error
	switch opts.backend {
	case "ebiten":
		err = runEbiten(a, title, max(opts.scale, 1))
	case "x11":
		err = runX11(ctx, a, title, opts.fps)
	default:
		err = fmt.Errorf("unknown backend %q", opts.backend)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("softdraw-view: %v", err)
	}
}

func size(flagValue, fallback int) int {
	if flagValue > 0 {
		return flagValue
	}
	return fallback
}

func faceOptions(opts options) []text.FaceOption {
	if opts.scaleX == 1 {
		return nil
	}
	return []text.FaceOption{text.WithScaleX(opts.scaleX)}
}

func fontSource(opts options) (*text.FontSource, error) {
	if opts.fontPath == "" {
		return text.DefaultSource(), nil
	}
	return text.NewFontSourceFromFile(opts.fontPath)
}

func loadFace(opts options) (*text.Face, error) {
	src, err := fontSource(opts)
	if err != nil {
		return nil, err
	}
	return src.Face(opts.fontSize, faceOptions(opts)...)
}

// loaded is a frame source built from an input file.
type loaded struct {
	paint         paintFunc
	release       func()
	width, height int
	deps          []string
}

func loadInput(input string, opts options) (*loaded, error) {
	l := &loaded{deps: []string{input}}

	if strings.EqualFold(filepath.Ext(input), ".lua") {
		cfg := script.DefaultConfig()
		cfg.Stdout = os.Stderr
		cfg.FontSize = opts.fontSize
		cfg.FaceOptions = faceOptions(opts)
		if opts.fontPath != "" {
			src, err := fontSource(opts)
			if err != nil {
				return nil, err
			}
			cfg.Source = src
			l.deps = append(l.deps, opts.fontPath)
		}
		sc, err := script.Load(input, cfg)
		if err != nil {
			return nil, err
		}
		l.paint = func(s *softdraw.Surface, n int) error {
			return sc.Frame(n).Paint(s)
		}
		l.release = func() { sc.Close() }
		l.width, l.height = scene.DefaultWidth, scene.DefaultHeight
		return l, nil
	}

	sc, err := scene.Load(input)
	if err != nil {
		return nil, err
	}
	if p := sc.FontPath(); p != "" {
		l.deps = append(l.deps, p)
	}
	l.paint = func(s *softdraw.Surface, _ int) error {
		return sc.Paint(s)
	}
	l.width, l.height = sc.Size()
	return l, nil
}

// reload swaps in a freshly loaded input after every change. Failed loads
// keep the previous frame source. The window size is fixed at startup.
func reload(ctx context.Context, a *app, input string, deps []string, opts options) {
	w, err := watch.New(watch.DefaultDebounce, deps...)
	if err != nil {
		softdraw.Logger().Warn("softdraw-view: watch disabled", "err", err)
		return
	}
	defer w.Close()

	err = w.Run(ctx, func(changed []string) error {
		l, err := loadInput(input, opts)
		if err != nil {
			softdraw.Logger().Warn("softdraw-view: reload failed", "input", input, "err", err)
			return nil
		}
		if l.width != a.width || l.height != a.height {
			softdraw.Logger().Debug("softdraw-view: size change ignored", "width", l.width, "height", l.height)
		}
		a.swap(l.paint, l.release)
		softdraw.Logger().Info("softdraw-view: reloaded", "input", input, "changed", changed)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		softdraw.Logger().Warn("softdraw-view: watch stopped", "err", err)
	}
}
