package meistercharts

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits used by NewZoomAndTranslation.
const (
	DefaultMinZoom = 0.01
	DefaultMaxZoom = 1000.0
)

// zoomAnim holds the active tweens started by AnimateTo.
type zoomAnim struct {
	tweens [4]*gween.Tween // zoomX, zoomY, translationX, translationY
	done   [4]bool
}

// ZoomAndTranslation owns the chart's zoom and pan and supplies the
// ChartState the render loop reads each frame. Every effective change marks
// the chart dirty.
type ZoomAndTranslation struct {
	surface Surface
	dirty   DirtyMarker

	margin       Insets
	axisX, axisY AxisOrientation

	zoomX, zoomY float64
	tx, ty       float64
	minZoom      float64
	maxZoom      float64

	lastSize Size
	lastTick float64
	hasTick  bool

	anim *zoomAnim
}

// NewZoomAndTranslation creates an unzoomed, untranslated state for surface.
// dirty may be nil and set later with SetDirtyMarker.
func NewZoomAndTranslation(surface Surface, dirty DirtyMarker) *ZoomAndTranslation {
	return &ZoomAndTranslation{
		surface:  surface,
		dirty:    dirty,
		zoomX:    1,
		zoomY:    1,
		minZoom:  DefaultMinZoom,
		maxZoom:  DefaultMaxZoom,
		lastSize: surface.Size(),
	}
}

// SetDirtyMarker sets the marker notified on changes.
func (z *ZoomAndTranslation) SetDirtyMarker(d DirtyMarker) { z.dirty = d }

func (z *ZoomAndTranslation) markDirty(reason DirtyReason) {
	if z.dirty != nil {
		z.dirty.MarkDirty(reason)
	}
}

// ChartState returns the current snapshot.
func (z *ZoomAndTranslation) ChartState() ChartState {
	s := ChartState{
		WindowSize:   z.surface.Size(),
		Margin:       z.margin,
		ZoomX:        z.zoomX,
		ZoomY:        z.zoomY,
		TranslationX: z.tx,
		TranslationY: z.ty,
		AxisX:        z.axisX,
		AxisY:        z.axisY,
	}
	vp := s.ContentViewport()
	s.ContentAreaSize = Size{Width: vp.Width, Height: vp.Height}
	return s
}

// Zoom returns the current zoom factors.
func (z *ZoomAndTranslation) Zoom() (x, y float64) { return z.zoomX, z.zoomY }

// Translation returns the current translation in logical pixels.
func (z *ZoomAndTranslation) Translation() (x, y float64) { return z.tx, z.ty }

// SetMargin sets the viewport margin around the content area.
func (z *ZoomAndTranslation) SetMargin(m Insets) {
	if z.margin == m {
		return
	}
	z.margin = m
	z.markDirty(DirtyChartState)
}

// SetAxisOrientation sets the orientation of both axes.
func (z *ZoomAndTranslation) SetAxisOrientation(x, y AxisOrientation) {
	if z.axisX == x && z.axisY == y {
		return
	}
	z.axisX, z.axisY = x, y
	z.markDirty(DirtyChartState)
}

// SetZoomLimits sets the range zoom factors are clamped to. Values are
// swapped if min > max; non-positive values keep the current limit.
func (z *ZoomAndTranslation) SetZoomLimits(min, max float64) {
	if min > 0 {
		z.minZoom = min
	}
	if max > 0 {
		z.maxZoom = max
	}
	if z.minZoom > z.maxZoom {
		z.minZoom, z.maxZoom = z.maxZoom, z.minZoom
	}
	z.SetZoom(z.zoomX, z.zoomY)
}

// ZoomLimits returns the zoom range.
func (z *ZoomAndTranslation) ZoomLimits() (min, max float64) { return z.minZoom, z.maxZoom }

func (z *ZoomAndTranslation) clampZoom(v float64) float64 {
	if math.IsNaN(v) {
		return z.minZoom
	}
	return math.Max(z.minZoom, math.Min(v, z.maxZoom))
}

// SetZoom sets both zoom factors, clamped to the zoom limits.
func (z *ZoomAndTranslation) SetZoom(x, y float64) {
	x, y = z.clampZoom(x), z.clampZoom(y)
	if x == z.zoomX && y == z.zoomY {
		return
	}
	z.zoomX, z.zoomY = x, y
	z.markDirty(DirtyChartState)
}

// ZoomAt multiplies the zoom by factor while keeping the window point
// (x, y) over the same content point.
func (z *ZoomAndTranslation) ZoomAt(factor, x, y float64) {
	if factor <= 0 {
		return
	}
	cx := (x - z.margin.Left - z.tx) / z.zoomX
	cy := (y - z.margin.Top - z.ty) / z.zoomY
	nx, ny := z.clampZoom(z.zoomX*factor), z.clampZoom(z.zoomY*factor)
	ntx := x - z.margin.Left - cx*nx
	nty := y - z.margin.Top - cy*ny
	if nx == z.zoomX && ny == z.zoomY && ntx == z.tx && nty == z.ty {
		return
	}
	z.zoomX, z.zoomY = nx, ny
	z.tx, z.ty = ntx, nty
	z.markDirty(DirtyChartState)
}

// Translate moves the content by (dx, dy) logical pixels.
func (z *ZoomAndTranslation) Translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	z.tx += dx
	z.ty += dy
	z.markDirty(DirtyChartState)
}

// SetTranslation sets the translation in logical pixels.
func (z *ZoomAndTranslation) SetTranslation(x, y float64) {
	if x == z.tx && y == z.ty {
		return
	}
	z.tx, z.ty = x, y
	z.markDirty(DirtyChartState)
}

// Reset restores zoom 1 and no translation, cancelling any animation.
func (z *ZoomAndTranslation) Reset() {
	z.anim = nil
	z.SetZoom(1, 1)
	z.SetTranslation(0, 0)
}

// AnimateTo tweens zoom and translation to the given values over duration
// seconds. The animation advances on every render-loop tick.
func (z *ZoomAndTranslation) AnimateTo(zoomX, zoomY, tx, ty float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	zoomX, zoomY = z.clampZoom(zoomX), z.clampZoom(zoomY)
	z.anim = &zoomAnim{tweens: [4]*gween.Tween{
		gween.New(float32(z.zoomX), float32(zoomX), duration, easeFn),
		gween.New(float32(z.zoomY), float32(zoomY), duration, easeFn),
		gween.New(float32(z.tx), float32(tx), duration, easeFn),
		gween.New(float32(z.ty), float32(ty), duration, easeFn),
	}}
	z.markDirty(DirtyAnimation)
}

// Animating reports whether an AnimateTo tween is running.
func (z *ZoomAndTranslation) Animating() bool { return z.anim != nil }

// update is registered as a render-loop listener. It detects resizes and
// advances the running animation.
func (z *ZoomAndTranslation) update(tick FrameTick) {
	if size := z.surface.Size(); size != z.lastSize {
		z.lastSize = size
		z.markDirty(DirtyResize)
	}

	dt := float32(0)
	if z.hasTick {
		dt = float32((tick.RelativeHighRes - z.lastTick) / 1000)
	}
	z.lastTick = tick.RelativeHighRes
	z.hasTick = true

	if z.anim == nil || dt <= 0 {
		return
	}
	a := z.anim
	var vals [4]float64
	targets := [4]*float64{&z.zoomX, &z.zoomY, &z.tx, &z.ty}
	for i, tw := range a.tweens {
		vals[i] = *targets[i]
		if !a.done[i] {
			v, done := tw.Update(dt)
			vals[i] = float64(v)
			a.done[i] = done
		}
	}
	changed := false
	for i, p := range targets {
		if *p != vals[i] {
			*p = vals[i]
			changed = true
		}
	}
	if a.done[0] && a.done[1] && a.done[2] && a.done[3] {
		z.anim = nil
	}
	if changed {
		z.markDirty(DirtyAnimation)
	}
}
