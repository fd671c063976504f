package meistercharts

import "log/slog"

// Chart is the top-level object that owns the render loop, the layer stack,
// the zoom state and the input translator for one surface.
type Chart struct {
	loop   *RenderLoop
	layers *LayerStack
	zoom   *ZoomAndTranslation

	input      inputState
	testRunner *TestRunner
}

// NewChart creates a chart painting on surface. The layer stack is the
// loop's paint listener; the zoom state supplies the ChartState and is
// advanced by a render-loop listener.
func NewChart(surface Surface, cfg Config) *Chart {
	c := &Chart{}
	c.zoom = NewZoomAndTranslation(surface, nil)
	c.loop = NewRenderLoop(surface, c.zoom, cfg)
	c.zoom.SetDirtyMarker(c.loop)
	c.layers = NewLayerStack(c.loop, c.zoom)
	c.input.dragDeadZone = defaultDragDeadZone

	c.loop.OnRenderLoop(c.zoom.update)
	c.loop.OnPaint(c.layers.Paint)
	c.loop.OnDispose(func() {
		c.input.injectQueue = nil
		c.input.keyQueue = nil
		c.testRunner = nil
	})
	return c
}

// Loop returns the chart's render loop.
func (c *Chart) Loop() *RenderLoop { return c.loop }

// Layers returns the chart's layer stack.
func (c *Chart) Layers() *LayerStack { return c.layers }

// Zoom returns the chart's zoom and translation state.
func (c *Chart) Zoom() *ZoomAndTranslation { return c.zoom }

// AddLayer appends a layer on top of the stack.
func (c *Chart) AddLayer(l Layer) { c.layers.Add(l) }

// RemoveLayer removes a layer from the stack.
func (c *Chart) RemoveLayer(l Layer) { c.layers.Remove(l) }

// MarkDirty requests a repaint on the next eligible tick.
func (c *Chart) MarkDirty(reason DirtyReason) { c.loop.MarkDirty(reason) }

// SetEventSink sets the optional sink receiving every dispatched event.
func (c *Chart) SetEventSink(sink EventSink) { c.layers.SetEventSink(sink) }

// Tick advances the render loop by one host frame.
func (c *Chart) Tick(frameTimestamp, relativeHighRes float64) {
	c.loop.Tick(frameTimestamp, relativeHighRes)
}

// Dispose releases the chart. Ticking afterwards panics.
func (c *Chart) Dispose() {
	Logger().Debug("chart disposed", slog.Int("layers", c.layers.Len()))
	c.loop.Dispose()
}
