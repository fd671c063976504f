package meistercharts

import (
	"log/slog"
	"time"
)

// FrameStats counts what the render loop did with its ticks.
type FrameStats struct {
	Paints          uint64
	SkippedPacing   uint64 // tick arrived before the next eligible render time
	SkippedClean    uint64 // nothing was dirty
	SkippedZeroSize uint64 // dirty, but the surface had no area
	SkippedDisabled uint64 // painting administratively disabled

	LastReasons       DirtyReasons
	LastPaintDuration time.Duration // only measured in debug mode
}

// Stats returns a copy of the loop's counters.
func (l *RenderLoop) Stats() FrameStats { return l.stats }

// SetDebugMode enables or disables per-paint debug logging.
func (l *RenderLoop) SetDebugMode(enabled bool) {
	l.debug = enabled
}

// debugLog writes the statistics of the paint that just finished.
func (l *RenderLoop) debugLog() {
	if !l.debug {
		return
	}
	s := l.stats
	Logger().Debug("paint",
		slog.Int("loopIndex", int(l.loopIndex)),
		slog.Duration("duration", s.LastPaintDuration),
		slog.String("reasons", s.LastReasons.String()),
		slog.Uint64("paints", s.Paints),
		slog.Uint64("skippedPacing", s.SkippedPacing),
		slog.Uint64("skippedClean", s.SkippedClean),
		slog.Uint64("skippedZeroSize", s.SkippedZeroSize),
	)
}
