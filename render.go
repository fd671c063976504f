package meistercharts

import (
	"log/slog"
	"time"
)

// RefreshRate is a target frame rate in frames per second. Zero means
// unlimited: every tick may paint.
type RefreshRate float64

// Distance returns the minimum number of milliseconds between two paints,
// or 0 when unlimited.
func (r RefreshRate) Distance() float64 {
	if r <= 0 {
		return 0
	}
	return 1000 / float64(r)
}

// Config configures a RenderLoop.
type Config struct {
	// TargetRefreshRate caps how often the loop paints. 0 is unlimited.
	TargetRefreshRate RefreshRate
	// TransformStackCapacity bounds save/restore nesting.
	TransformStackCapacity int
	// PixelSnap aligns content-layer translations to device pixels.
	PixelSnap bool
	// Debug logs per-paint statistics at debug level.
	Debug bool
}

// DefaultConfig returns an unlimited-rate configuration with pixel snapping.
func DefaultConfig() Config {
	return Config{
		TransformStackCapacity: DefaultTransformStackCapacity,
		PixelSnap:              true,
	}
}

// FrameTick is passed to render-loop listeners on every tick that passes
// the pacing gate, whether or not a paint follows.
type FrameTick struct {
	FrameTimestamp  float64 // ms, wall clock of the host frame
	RelativeHighRes float64 // ms, monotonic
	LoopIndex       PaintingLoopIndex
}

// PaintingContext is handed to every paint listener. It is reused between
// frames; listeners must not retain it.
type PaintingContext struct {
	FrameTimestamp float64           // ms
	Delta          float64           // ms since the previous paint, 0 on the first
	LoopIndex      PaintingLoopIndex // index of this paint pass
	Reasons        DirtyReasons      // why this paint happened
	Stack          *TransformStack
	State          ChartState
	Surface        Surface
	PixelSnap      bool
}

// FillRect fills r (in the current coordinate system) if the surface
// supports it.
func (c *PaintingContext) FillRect(r Rect, col Color) {
	if f, ok := c.Surface.(RectFiller); ok {
		f.FillRect(c.Stack.Current(), r, col)
	}
}

// DevicePixelRatio returns the surface's device pixel ratio.
func (c *PaintingContext) DevicePixelRatio() float64 {
	return validRatio(c.Surface.DevicePixelRatio())
}

// RenderLoop decides when to repaint a surface. An external ticking source
// calls Tick once per host animation frame; the loop applies the pacing
// gate, notifies render-loop listeners, and paints when something is dirty.
//
// A RenderLoop is single-threaded: Tick, MarkDirty and listener registration
// must all happen on the thread that drives the host frames.
type RenderLoop struct {
	surface Surface
	state   ChartStateProvider
	stack   *TransformStack
	dirty   DirtyTracker

	loopIndex     PaintingLoopIndex
	lastPaintTime float64
	hasPainted    bool

	minDistance    float64
	targetRate     RefreshRate
	nextRenderTime float64

	disabled        bool
	disabledPainted bool

	pixelSnap bool
	debug     bool
	stats     FrameStats

	loopListeners  listenerList[func(FrameTick)]
	paintListeners listenerList[func(*PaintingContext)]
	disposer       Disposer

	ctx PaintingContext
}

// NewRenderLoop creates a loop painting on surface. state supplies the
// chart geometry; nil uses the whole surface, unzoomed. The loop starts
// dirty so the first eligible tick paints.
func NewRenderLoop(surface Surface, state ChartStateProvider, cfg Config) *RenderLoop {
	if state == nil {
		state = surfaceState{surface: surface}
	}
	l := &RenderLoop{
		surface:   surface,
		state:     state,
		stack:     NewTransformStack(cfg.TransformStackCapacity),
		pixelSnap: cfg.PixelSnap,
		debug:     cfg.Debug,
	}
	l.SetTargetRefreshRate(cfg.TargetRefreshRate)
	l.dirty.MarkDirty(DirtyInitial)
	return l
}

// Surface returns the surface the loop paints on.
func (l *RenderLoop) Surface() Surface { return l.surface }

// Stack returns the loop's transform stack.
func (l *RenderLoop) Stack() *TransformStack { return l.stack }

// SetChartStateProvider replaces the chart state source. nil restores the
// surface-derived default.
func (l *RenderLoop) SetChartStateProvider(p ChartStateProvider) {
	if p == nil {
		p = surfaceState{surface: l.surface}
	}
	l.state = p
}

// ChartState returns the current chart state snapshot.
func (l *RenderLoop) ChartState() ChartState { return l.state.ChartState() }

// MarkDirty requests a repaint on the next eligible tick.
func (l *RenderLoop) MarkDirty(reason DirtyReason) { l.dirty.MarkDirty(reason) }

// IsDirty reports whether a repaint is pending.
func (l *RenderLoop) IsDirty() bool { return l.dirty.IsDirty() }

// LoopIndex returns the index of the most recent paint.
func (l *RenderLoop) LoopIndex() PaintingLoopIndex { return l.loopIndex }

// SetTargetRefreshRate changes the pacing. The gate re-arms so the next tick
// is eligible immediately.
func (l *RenderLoop) SetTargetRefreshRate(r RefreshRate) {
	l.targetRate = r
	l.minDistance = r.Distance()
	l.nextRenderTime = 0
}

// TargetRefreshRate returns the configured target rate.
func (l *RenderLoop) TargetRefreshRate() RefreshRate { return l.targetRate }

// SetPixelSnap enables or disables pixel snapping of content translations.
func (l *RenderLoop) SetPixelSnap(enabled bool) {
	if l.pixelSnap != enabled {
		l.pixelSnap = enabled
		l.dirty.MarkDirty(DirtyConfigurationChanged)
	}
}

// SetPaintingDisabled administratively disables painting. While disabled,
// ticks do nothing except show the surface's placeholder once.
func (l *RenderLoop) SetPaintingDisabled(disabled bool) {
	if l.disabled == disabled {
		return
	}
	l.disabled = disabled
	if !disabled {
		l.disabledPainted = false
		l.dirty.MarkDirty(DirtyVisibility)
	}
}

// PaintingDisabled reports whether painting is disabled.
func (l *RenderLoop) PaintingDisabled() bool { return l.disabled }

// OnRenderLoop registers a listener called on every tick that passes the
// pacing gate, before the dirty check.
func (l *RenderLoop) OnRenderLoop(fn func(FrameTick)) ListenerHandle {
	return l.loopListeners.add(fn)
}

// OnPaint registers a paint listener. Paint listeners run in registration
// order inside one save/restore scope of the transform stack.
func (l *RenderLoop) OnPaint(fn func(*PaintingContext)) ListenerHandle {
	return l.paintListeners.add(fn)
}

// OnDispose registers a cleanup action run by Dispose.
func (l *RenderLoop) OnDispose(fn func()) {
	l.disposer.OnDispose(fn)
}

// Dispose runs cleanup actions. Ticking afterwards, or disposing twice,
// panics.
func (l *RenderLoop) Dispose() {
	l.disposer.Dispose()
	Logger().Debug("render loop disposed",
		slog.Int("paints", int(l.stats.Paints)),
		slog.Int("loopListeners", l.loopListeners.len()),
		slog.Int("paintListeners", l.paintListeners.len()),
		slog.Int("loopIndex", int(l.loopIndex)))
}

// Disposed reports whether Dispose has been called.
func (l *RenderLoop) Disposed() bool { return l.disposer.Disposed() }

// Tick advances the loop by one host frame. frameTimestamp is the host's
// frame time in ms; relativeHighRes is a monotonic ms clock used for pacing.
//
// Panics with ErrDisposed after Dispose, and with a transform stack error
// when a paint listener leaves the stack unbalanced. A panicking paint
// listener propagates, but the transform stack is restored first.
func (l *RenderLoop) Tick(frameTimestamp, relativeHighRes float64) {
	if l.disposer.Disposed() {
		usagePanic("tick", ErrDisposed, "")
	}

	if l.disabled {
		if !l.disabledPainted {
			l.disabledPainted = true
			if p, ok := l.surface.(DisabledPainter); ok {
				p.PaintDisabled()
			}
		}
		l.stats.SkippedDisabled++
		if traceEnabled() {
			trace("tick skipped: painting disabled")
		}
		return
	}

	if l.minDistance > 0 {
		if relativeHighRes < l.nextRenderTime {
			l.stats.SkippedPacing++
			if traceEnabled() {
				trace("tick skipped: pacing",
					slog.Float64("now", relativeHighRes),
					slog.Float64("next", l.nextRenderTime))
			}
			return
		}
		l.nextRenderTime += l.minDistance
		if l.nextRenderTime < relativeHighRes {
			// The tick source is slower than the target; re-synchronise
			// instead of accumulating a backlog.
			l.nextRenderTime = relativeHighRes + l.minDistance/2
		}
	}

	tick := FrameTick{
		FrameTimestamp:  frameTimestamp,
		RelativeHighRes: relativeHighRes,
		LoopIndex:       l.loopIndex,
	}
	l.loopListeners.each(func(fn func(FrameTick)) { fn(tick) })

	if !l.dirty.IsDirty() {
		l.stats.SkippedClean++
		return
	}

	reasons := l.dirty.Consume()
	state := l.state.ChartState()
	if l.surface.Size().IsZero() || state.IsZeroSize() {
		l.stats.SkippedZeroSize++
		if traceEnabled() {
			trace("paint skipped: zero size",
				slog.String("reasons", reasons.String()))
		}
		return
	}

	l.paint(frameTimestamp, reasons, state)
}

func (l *RenderLoop) paint(frameTimestamp float64, reasons DirtyReasons, state ChartState) {
	var t0 time.Time
	if l.debug {
		t0 = time.Now()
	}

	l.surface.ApplyFrameDefaults()
	l.stack.unwind(0)
	l.stack.Reset()
	ratio := validRatio(l.surface.DevicePixelRatio())
	l.stack.Scale(ratio, ratio)

	l.stack.Save()
	completed := false
	defer func() {
		if !completed {
			l.stack.unwind(0)
		}
	}()

	l.loopIndex = l.loopIndex.Next()
	delta := 0.0
	if l.hasPainted {
		delta = frameTimestamp - l.lastPaintTime
	}
	l.lastPaintTime = frameTimestamp
	l.hasPainted = true

	ctx := &l.ctx
	*ctx = PaintingContext{
		FrameTimestamp: frameTimestamp,
		Delta:          delta,
		LoopIndex:      l.loopIndex,
		Reasons:        reasons,
		Stack:          l.stack,
		State:          state,
		Surface:        l.surface,
		PixelSnap:      l.pixelSnap,
	}
	l.paintListeners.each(func(fn func(*PaintingContext)) { fn(ctx) })

	if d := l.stack.Depth(); d != 1 {
		usagePanic("paint", ErrUnbalancedTransform, "depth %d after paint listeners, want 1", d)
	}
	l.stack.Restore()
	completed = true

	l.stats.Paints++
	l.stats.LastReasons = reasons
	if l.debug {
		l.stats.LastPaintDuration = time.Since(t0)
		l.debugLog()
	}
}
