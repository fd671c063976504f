package meistercharts

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width, Height float64
}

// IsZero reports whether either dimension is zero or negative. A collapsed
// surface (hidden tab, minimised window) has a zero size.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Insets describes margins around the content area.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// AxisOrientation tells in which direction domain values grow along an axis.
type AxisOrientation uint8

const (
	AxisOrientationNormal   AxisOrientation = iota // values grow right / down
	AxisOrientationReversed                        // values grow left / up
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventConsumption is the binary result of an event handler. Consumed stops
// the dispatch chain; Ignored passes the event on to the next layer.
type EventConsumption uint8

const (
	Ignored  EventConsumption = iota // the handler did not act on the event
	Consumed                         // the handler acted; stop propagation
)

// String returns "consumed" or "ignored".
func (c EventConsumption) String() string {
	if c == Consumed {
		return "consumed"
	}
	return "ignored"
}
