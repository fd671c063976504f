package meistercharts

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// LevelTrace is used for expected, high-frequency skips such as a pacing
// gate miss or a zero-size surface. It sits below slog.LevelDebug so that
// debug output stays readable.
const LevelTrace = slog.LevelDebug - 4

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by the render loop, the layer stack
// and the ebiten driver. By default nothing is logged. Pass nil to restore
// the silent default.
//
// Log levels used:
//   - [LevelTrace]: skipped ticks (pacing, zero size, disabled)
//   - [slog.LevelDebug]: per-paint statistics in debug mode, disposal
//   - [slog.LevelWarn]: screenshot failures
//
// Example:
//
//	meistercharts.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: meistercharts.LevelTrace,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// traceEnabled guards trace logging on hot paths so attributes are not built
// when nobody listens.
func traceEnabled() bool {
	return Logger().Enabled(context.Background(), LevelTrace)
}

// trace logs at LevelTrace.
func trace(msg string, args ...any) {
	Logger().Log(context.Background(), LevelTrace, msg, args...)
}
