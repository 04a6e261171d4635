package draw

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

// SetLogger configures the logger used by the geometry engine. The engine is
// silent by default; nil restores that.
//
// Levels used:
//   - [slog.LevelDebug]: rebuild statistics, rejected pixels, busy buffer maps
//   - [slog.LevelWarn]: raster mode degraded to an outline
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine's current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
