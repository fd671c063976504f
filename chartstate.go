package meistercharts

// Surface is the rendering surface a RenderLoop paints on. It is passed to
// the loop explicitly; there is no global surface factory.
type Surface interface {
	// Size returns the window size in logical pixels.
	Size() Size
	// DevicePixelRatio returns physical pixels per logical pixel.
	DevicePixelRatio() float64
	// ApplyFrameDefaults restores host canvas state (font, line join, ...)
	// that some hosts reset on resize. Called before every paint.
	ApplyFrameDefaults()
}

// DisabledPainter is an optional Surface capability. When painting is
// disabled the render loop calls PaintDisabled once so the surface can show
// a placeholder.
type DisabledPainter interface {
	PaintDisabled()
}

// RectFiller is an optional Surface capability used by PaintingContext.FillRect.
type RectFiller interface {
	FillRect(m AffineMatrix, r Rect, c Color)
}

// Screenshotter is an optional Surface capability used by TestRunner.
type Screenshotter interface {
	Screenshot(label string)
}

// ChartState is an immutable per-frame snapshot of the chart geometry.
type ChartState struct {
	WindowSize      Size
	ContentAreaSize Size
	Margin          Insets

	ZoomX, ZoomY               float64
	TranslationX, TranslationY float64

	AxisX, AxisY AxisOrientation
}

// ChartStateProvider supplies the ChartState read once per painted frame.
type ChartStateProvider interface {
	ChartState() ChartState
}

// IsZeroSize reports whether there is nothing meaningful to paint.
func (s ChartState) IsZeroSize() bool {
	return s.WindowSize.IsZero() || s.ContentAreaSize.IsZero()
}

// ContentViewport returns the window area inside the margins.
func (s ChartState) ContentViewport() Rect {
	w := s.WindowSize.Width - s.Margin.Left - s.Margin.Right
	h := s.WindowSize.Height - s.Margin.Top - s.Margin.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: s.Margin.Left, Y: s.Margin.Top, Width: w, Height: h}
}

// ContentToWindow converts content-area coordinates (unzoomed) to window
// coordinates.
func (s ChartState) ContentToWindow(x, y float64) (float64, float64) {
	return s.Margin.Left + s.TranslationX + x*s.ZoomX,
		s.Margin.Top + s.TranslationY + y*s.ZoomY
}

// WindowToContent is the inverse of ContentToWindow. Returns the input
// unchanged on an axis whose zoom is zero.
func (s ChartState) WindowToContent(x, y float64) (float64, float64) {
	cx, cy := x, y
	if s.ZoomX != 0 {
		cx = (x - s.Margin.Left - s.TranslationX) / s.ZoomX
	}
	if s.ZoomY != 0 {
		cy = (y - s.Margin.Top - s.TranslationY) / s.ZoomY
	}
	return cx, cy
}

// surfaceState is the ChartStateProvider used when none is given: the whole
// window is the content area, unzoomed.
type surfaceState struct {
	surface Surface
}

func (p surfaceState) ChartState() ChartState {
	size := p.surface.Size()
	return ChartState{
		WindowSize:      size,
		ContentAreaSize: size,
		ZoomX:           1,
		ZoomY:           1,
	}
}
