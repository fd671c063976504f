package meistercharts

// DefaultWheelZoomFactor is the zoom step of one wheel notch.
const DefaultWheelZoomFactor = 1.1

// NavigationLayer turns wheel, drag and pinch input into zoom and
// translation changes. It paints nothing; add it on top of the content
// layers it navigates.
type NavigationLayer struct {
	zoom *ZoomAndTranslation

	// WheelFactor is the zoom multiplier per wheel notch. 0 uses
	// DefaultWheelZoomFactor.
	WheelFactor float64
	// Disabled lets every event pass through.
	Disabled bool
}

// NewNavigationLayer creates a navigation layer driving zoom.
func NewNavigationLayer(zoom *ZoomAndTranslation) *NavigationLayer {
	return &NavigationLayer{zoom: zoom}
}

func (n *NavigationLayer) LayerType() LayerType { return LayerTypeNotification }

func (n *NavigationLayer) Paint(*PaintingContext) {}

// HandleMouse zooms around the cursor on wheel and pans on drag.
func (n *NavigationLayer) HandleMouse(ev MouseEvent, _ *EventContext) EventConsumption {
	if n.Disabled {
		return Ignored
	}
	switch ev.Type {
	case MouseWheel:
		if ev.DeltaY == 0 {
			return Ignored
		}
		factor := n.WheelFactor
		if factor <= 0 {
			factor = DefaultWheelZoomFactor
		}
		if ev.DeltaY < 0 {
			factor = 1 / factor
		}
		n.zoom.ZoomAt(factor, ev.X, ev.Y)
		return Consumed
	case MouseDrag:
		n.zoom.Translate(ev.DeltaX, ev.DeltaY)
		return Consumed
	}
	return Ignored
}

// HandlePinch zooms around the gesture centre by the change since the
// previous pinch event.
func (n *NavigationLayer) HandlePinch(ev PinchEvent, _ *EventContext) EventConsumption {
	if n.Disabled {
		return Ignored
	}
	n.zoom.ZoomAt(1+ev.ScaleDelta, ev.CenterX, ev.CenterY)
	return Consumed
}
