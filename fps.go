package meistercharts

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshInterval is how often in ms the FPS layer requests a repaint.
const fpsRefreshInterval = 500.0

// FPSLayer prints ebiten's measured frame rate in the top-left corner. It
// only draws on an EbitenSurface.
type FPSLayer struct {
	X, Y int // device pixels

	chart   *Chart
	last    float64
	handle  ListenerHandle
	visible bool
}

// NewFPSLayer creates an FPS layer that marks c dirty about twice a second
// so the reading stays current.
func NewFPSLayer(c *Chart) *FPSLayer {
	l := &FPSLayer{X: 4, Y: 4, chart: c, visible: true}
	l.handle = c.Loop().OnRenderLoop(func(tick FrameTick) {
		if !l.visible {
			return
		}
		if tick.RelativeHighRes-l.last >= fpsRefreshInterval {
			l.last = tick.RelativeHighRes
			c.MarkDirty(DirtyAnimation)
		}
	})
	return l
}

// LayerType places the layer above content.
func (l *FPSLayer) LayerType() LayerType { return LayerTypeNotification }

// Visible reports whether the layer is shown.
func (l *FPSLayer) Visible() bool { return l.visible }

// SetVisible shows or hides the layer and repaints when that changes.
func (l *FPSLayer) SetVisible(v bool) {
	if l.visible == v {
		return
	}
	l.visible = v
	l.chart.MarkDirty(DirtyVisibility)
}

// Detach stops the periodic repaints.
func (l *FPSLayer) Detach() { l.handle.Remove() }

func (l *FPSLayer) Paint(ctx *PaintingContext) {
	s, ok := ctx.Surface.(*EbitenSurface)
	if !ok || s.Image() == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.Image(), fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), l.X, l.Y)
}
