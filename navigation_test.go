package meistercharts

import "testing"

func newNavigationChart() (*Chart, *NavigationLayer) {
	c := NewChart(newFakeSurface(400, 400), DefaultConfig())
	n := NewNavigationLayer(c.Zoom())
	c.AddLayer(n)
	return c, n
}

func TestNavigationWheel(t *testing.T) {
	c, n := newNavigationChart()
	if got := c.Layers().DispatchMouse(MouseEvent{Type: MouseWheel, X: 100, Y: 100, DeltaY: 1}); got != Consumed {
		t.Fatalf("wheel = %v, want consumed", got)
	}
	zx, _ := c.Zoom().Zoom()
	assertNear(t, "zoom after wheel up", zx, DefaultWheelZoomFactor)

	n.WheelFactor = 2
	c.Layers().DispatchMouse(MouseEvent{Type: MouseWheel, X: 100, Y: 100, DeltaY: -1})
	zx, _ = c.Zoom().Zoom()
	assertNear(t, "zoom after wheel down", zx, DefaultWheelZoomFactor/2)

	if got := c.Layers().DispatchMouse(MouseEvent{Type: MouseWheel, DeltaX: 1}); got != Ignored {
		t.Errorf("horizontal wheel = %v, want ignored", got)
	}
}

func TestNavigationDrag(t *testing.T) {
	c, _ := newNavigationChart()
	c.InjectDrag(10, 10, 110, 60, 3)
	for i := 0; i < 3; i++ {
		c.ProcessInput(InputFrame{})
	}
	tx, ty := c.Zoom().Translation()
	// The final release reports no drag, so only the move to the midpoint
	// pans.
	assertNear(t, "translationX", tx, 50)
	assertNear(t, "translationY", ty, 25)
}

func TestNavigationDisabled(t *testing.T) {
	c, n := newNavigationChart()
	n.Disabled = true
	if got := c.Layers().DispatchMouse(MouseEvent{Type: MouseWheel, DeltaY: 1}); got != Ignored {
		t.Errorf("wheel = %v, want ignored", got)
	}
	if got := c.Layers().DispatchPinch(PinchEvent{Scale: 2, ScaleDelta: 1}); got != Ignored {
		t.Errorf("pinch = %v, want ignored", got)
	}
	if zx, _ := c.Zoom().Zoom(); zx != 1 {
		t.Errorf("zoom = %v, want 1", zx)
	}
}
