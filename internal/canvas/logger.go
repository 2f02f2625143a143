// Package canvas holds the whiteboard engine: viewport math, item store,
// geometry generators, gesture handling, freehand strokes, tools, history
// and presence. Sub-packages never perform I/O; collaborators are injected
// by the editor package.
package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by the engine packages.
// By default the engine is silent. Pass nil to restore the silent logger.
//
// Levels used:
//   - [slog.LevelDebug]: gesture lifecycle, erase hits, rejected points
//   - [slog.LevelWarn]: failed saves and rejected uploads
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
