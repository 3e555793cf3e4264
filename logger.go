package softdraw

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false, so disabled
// calls never build their attributes.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler     { return h }
func (h discardHandler) WithGroup(string) slog.Handler          { return h }

var (
	silent = slog.New(discardHandler{})
	logger atomic.Pointer[slog.Logger]
)

func init() {
	logger.Store(silent)
}

// SetLogger installs the logger shared by softdraw, its text package, the
// scene, script, watch and ui packages, and the two commands. A nil logger
// silences them again, which is the default.
//
// Messages are prefixed with the emitting package ("softdraw:", "text:",
// "scene:", "script:", "watch:", "ui:"). What each level carries:
//
//   - Debug: a surface was created; a line or rectangle was rejected as
//     diagonal or inverted; a glyph mask was rasterized or came out empty;
//     font metrics or kerning could not be read; the demo counter moved.
//   - Info: a command wrote its PNG or reloaded its input; the watcher saw
//     a change.
//   - Warn: a scene op was skipped; a script hit its CPU or memory limit;
//     go-text could not parse a font and the builtin shaper took over; the
//     watcher or the X11 connection reported an error.
//   - Error: a Go function bound into Lua panicked.
//
// Surfaces are built once per frame, so Debug output is per frame and
// should stay off outside of troubleshooting.
//
//	softdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the installed logger. It is safe for concurrent use with
// SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
