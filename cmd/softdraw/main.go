// Command softdraw renders a scene (.toml, .yaml) or a Lua script (.lua) to
// a PNG file.
//
// Usage:
//
//	softdraw [flags] input
//
// With -watch the input (and the font it uses) is watched and the PNG is
// rewritten after every change until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/gogpu/softdraw"
	"github.com/gogpu/softdraw/internal/scene"
	"github.com/gogpu/softdraw/internal/script"
	"github.com/gogpu/softdraw/internal/watch"
	"github.com/gogpu/softdraw/text"
)

type options struct {
	output   string
	width    int
	height   int
	frame    int
	fontPath string
	fontSize float64
	scaleX   float64
}

func main() {
	var (
		opts    options
		watchIt = flag.Bool("watch", false, "re-render when the input changes")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.StringVar(&opts.output, "output", "out.png", "output file")
	flag.IntVar(&opts.width, "width", 0, "image width (default: from the scene, or 320)")
	flag.IntVar(&opts.height, "height", 0, "image height (default: from the scene, or 240)")
	flag.IntVar(&opts.frame, "frame", 0, "frame number passed to a script")
	flag.StringVar(&opts.fontPath, "font", "", "font file for scripts (default: embedded Go Mono)")
	flag.Float64Var(&opts.fontSize, "size", script.DefaultFontSize, "default label size for scripts")
	flag.Float64Var(&opts.scaleX, "scalex", 1, "horizontal glyph scale for scripts")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: softdraw [flags] input.{toml,yaml,lua}")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	softdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	deps, err := renderFile(input, opts)
	if err != nil {
		log.Fatalf("softdraw: %v", err)
	}
	log.Printf("Rendered %s to %s\n", input, opts.output)
	if !*watchIt {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchLoop(ctx, input, deps, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("softdraw: %v", err)
	}
}

// watchLoop re-renders input whenever it or one of deps changes. The set of
// watched files is rebuilt when the dependencies change, such as a scene
// switching fonts.
func watchLoop(ctx context.Context, input string, deps []string, opts options) error {
	for {
		w, err := watch.New(watch.DefaultDebounce, deps...)
		if err != nil {
			return err
		}

		next := deps
		innerCtx, cancel := context.WithCancel(ctx)
		err = w.Run(innerCtx, func([]string) error {
			d, err := renderFile(input, opts)
			if err != nil {
				return err
			}
			softdraw.Logger().Info("softdraw: rendered", "input", input, "output", opts.output)
			if !slices.Equal(d, deps) {
				next = d
				cancel()
			}
			return nil
		})
		cancel()
		w.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		deps = next
	}
}

// renderFile renders input once and writes the PNG. It returns the files
// the output depends on.
func renderFile(input string, opts options) ([]string, error) {
	frame, w, h, deps, closeFn, err := load(input, opts)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if opts.width > 0 {
		w = opts.width
	}
	if opts.height > 0 {
		h = opts.height
	}
	s, err := softdraw.NewSurface(make([]byte, w*h*softdraw.BytesPerPixel), w, h)
	if err != nil {
		return nil, err
	}
	// Command failures are logged by the scene and still yield an image.
	if err := frame.Paint(s); err != nil {
		var cerr *scene.CommandError
		if !errors.As(err, &cerr) {
			return nil, err
		}
	}
	return deps, writePNG(opts.output, s)
}

func load(input string, opts options) (frame softdraw.Frame, w, h int, deps []string, closeFn func(), err error) {
	deps = []string{input}
	closeFn = func() {}

	if strings.EqualFold(filepath.Ext(input), ".lua") {
		cfg := script.DefaultConfig()
		cfg.Stdout = os.Stderr
		cfg.FontSize = opts.fontSize
		if opts.scaleX != 1 {
			cfg.FaceOptions = append(cfg.FaceOptions, text.WithScaleX(opts.scaleX))
		}
		if opts.fontPath != "" {
			src, err := text.NewFontSourceFromFile(opts.fontPath)
			if err != nil {
				return nil, 0, 0, nil, nil, err
			}
			cfg.Source = src
			deps = append(deps, opts.fontPath)
		}
		sc, err := script.Load(input, cfg)
		if err != nil {
			return nil, 0, 0, nil, nil, err
		}
		return sc.Frame(opts.frame), scene.DefaultWidth, scene.DefaultHeight, deps, func() { sc.Close() }, nil
	}

	sc, err := scene.Load(input)
	if err != nil {
		return nil, 0, 0, nil, nil, err
	}
	if p := sc.FontPath(); p != "" {
		deps = append(deps, p)
	}
	w, h = sc.Size()
	return sc, w, h, deps, closeFn, nil
}

// writePNG encodes s to a temporary file next to path and renames it into
// place, so viewers never see a half-written image.
func writePNG(path string, s *softdraw.Surface) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".softdraw-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
