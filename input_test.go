package meistercharts

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// eventLog is a layer that records every event it receives as a short
// string and consumes nothing.
type eventLog struct {
	events  []string
	mouse   []MouseEvent
	pinches []PinchEvent
}

func (l *eventLog) Paint(*PaintingContext) {}

func (l *eventLog) HandleMouse(ev MouseEvent, _ *EventContext) EventConsumption {
	l.events = append(l.events, "mouse:"+ev.Type.String())
	l.mouse = append(l.mouse, ev)
	return Ignored
}

func (l *eventLog) HandleKey(ev KeyEvent, _ *EventContext) EventConsumption {
	if ev.Type == KeyType {
		l.events = append(l.events, "key:type:"+string(ev.Char))
	} else {
		l.events = append(l.events, "key:"+ev.Type.String()+":"+ev.Key)
	}
	return Ignored
}

func (l *eventLog) HandlePointer(ev PointerEvent, _ *EventContext) EventConsumption {
	l.events = append(l.events, fmt.Sprintf("pointer%d:%s", ev.PointerID, ev.Type))
	return Ignored
}

func (l *eventLog) HandleTouch(ev TouchEvent, _ *EventContext) EventConsumption {
	l.events = append(l.events, fmt.Sprintf("touch:%s:%d/%d", ev.Type, ev.Changed.ID, len(ev.Touches)))
	return Ignored
}

func (l *eventLog) HandlePinch(ev PinchEvent, _ *EventContext) EventConsumption {
	l.events = append(l.events, fmt.Sprintf("pinch:%.2f", ev.Scale))
	l.pinches = append(l.pinches, ev)
	return Ignored
}

func (l *eventLog) take() string {
	s := strings.Join(l.events, " ")
	l.events = l.events[:0]
	return s
}

func (l *eventLog) has(event string) bool {
	for _, e := range l.events {
		if e == event {
			return true
		}
	}
	return false
}

func newInputChart() (*Chart, *eventLog) {
	c := NewChart(newFakeSurface(200, 200), DefaultConfig())
	l := &eventLog{}
	c.AddLayer(l)
	return c, l
}

func mouseFrame(ts, x, y float64, left bool) InputFrame {
	f := InputFrame{Timestamp: ts, CursorX: x, CursorY: y, CursorInside: true}
	f.Buttons[MouseButtonLeft] = left
	return f
}

func TestMouseEnterMoveLeave(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(mouseFrame(0, 10, 10, false))
	if got := l.take(); got != "pointer0:over pointer0:enter pointer0:move mouse:move" {
		t.Errorf("enter = %q", got)
	}
	c.ProcessInput(mouseFrame(16, 10, 10, false))
	if got := l.take(); got != "" {
		t.Errorf("unchanged position produced %q", got)
	}
	c.ProcessInput(InputFrame{Timestamp: 32, CursorX: -5, CursorY: 10})
	if got := l.take(); got != "pointer0:out pointer0:leave" {
		t.Errorf("leave = %q", got)
	}
}

func TestMouseClick(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(mouseFrame(0, 10, 10, false))
	l.take()
	c.ProcessInput(mouseFrame(16, 10, 10, true))
	if got := l.take(); got != "pointer0:down mouse:down" {
		t.Errorf("press = %q", got)
	}
	c.ProcessInput(mouseFrame(32, 10, 10, false))
	if got := l.take(); got != "pointer0:up mouse:up mouse:click" {
		t.Errorf("release = %q", got)
	}
}

func TestMouseDoubleClick(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(mouseFrame(0, 10, 10, true))
	c.ProcessInput(mouseFrame(50, 10, 10, false))
	c.ProcessInput(mouseFrame(100, 11, 10, true))
	c.ProcessInput(mouseFrame(150, 11, 10, false))
	if !l.has("mouse:double-click") {
		t.Errorf("no double click in %v", l.events)
	}
	l.take()

	// A third click starts a new pair.
	c.ProcessInput(mouseFrame(200, 11, 10, true))
	c.ProcessInput(mouseFrame(250, 11, 10, false))
	if l.has("mouse:double-click") {
		t.Errorf("third click reported a double click: %v", l.events)
	}
}

func TestMouseDoubleClickTooSlow(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(mouseFrame(0, 10, 10, true))
	c.ProcessInput(mouseFrame(50, 10, 10, false))
	c.ProcessInput(mouseFrame(50+DoubleClickInterval+1, 10, 10, true))
	c.ProcessInput(mouseFrame(50+DoubleClickInterval+20, 10, 10, false))
	if l.has("mouse:double-click") {
		t.Errorf("slow clicks reported a double click: %v", l.events)
	}
}

func TestMouseDragDeadZone(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(mouseFrame(0, 10, 10, true))
	l.take()
	c.ProcessInput(mouseFrame(16, 12, 10, true)) // within the dead zone
	if got := l.take(); got != "pointer0:move" {
		t.Errorf("small move = %q", got)
	}
	c.ProcessInput(mouseFrame(32, 30, 10, true))
	if got := l.take(); got != "pointer0:move mouse:drag" {
		t.Errorf("drag = %q", got)
	}
	last := l.mouse[len(l.mouse)-1]
	if last.DeltaX != 18 || last.DeltaY != 0 {
		t.Errorf("drag delta = %v, %v, want 18, 0", last.DeltaX, last.DeltaY)
	}
	c.ProcessInput(mouseFrame(48, 30, 10, false))
	if got := l.take(); got != "pointer0:up mouse:up" {
		t.Errorf("release after drag = %q (no click expected)", got)
	}
}

func TestSetDragDeadZone(t *testing.T) {
	c, l := newInputChart()
	c.SetDragDeadZone(0)
	c.ProcessInput(mouseFrame(0, 10, 10, true))
	c.ProcessInput(mouseFrame(16, 11, 10, true))
	if !l.has("mouse:drag") {
		t.Errorf("1px move with no dead zone did not drag: %v", l.events)
	}
}

func TestMouseWheel(t *testing.T) {
	c, l := newInputChart()
	f := mouseFrame(0, 20, 30, false)
	f.WheelY = -1
	c.ProcessInput(f)
	last := l.mouse[len(l.mouse)-1]
	if last.Type != MouseWheel || last.DeltaY != -1 || last.X != 20 || last.Y != 30 {
		t.Errorf("wheel event = %+v", last)
	}
}

func TestKeys(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(InputFrame{KeysPressed: []string{"A"}, Chars: []rune{'a'}, KeysReleased: []string{"B"}})
	if got := l.take(); got != "key:down:A key:type:a key:up:B" {
		t.Errorf("keys = %q", got)
	}
}

func TestTouchLifecycle(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 7, X: 5, Y: 5}}})
	if got := l.take(); got != "pointer1:over pointer1:enter pointer1:down touch:start:7/1" {
		t.Errorf("touch start = %q", got)
	}
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 7, X: 9, Y: 5}, {ID: 8, X: 50, Y: 50}}})
	if got := l.take(); got != "pointer1:move touch:move:7/2 pointer2:over pointer2:enter pointer2:down touch:start:8/2" {
		t.Errorf("touch move = %q", got)
	}
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 8, X: 50, Y: 50}}})
	if got := l.take(); got != "pointer1:up touch:end:7/1 pointer1:out pointer1:leave" {
		t.Errorf("touch end = %q", got)
	}
}

func TestFocusLossCancelsPointers(t *testing.T) {
	c, l := newInputChart()
	f := mouseFrame(0, 10, 10, true)
	f.Touches = []Touch{{ID: 3, X: 1, Y: 1}}
	c.ProcessInput(f)
	l.take()

	c.ProcessInput(InputFrame{Timestamp: 16, Unfocused: true})
	got := l.take()
	for _, want := range []string{"pointer0:cancel", "pointer1:cancel", "touch:cancel:3/1"} {
		if !strings.Contains(got, want) {
			t.Errorf("focus loss events %q missing %q", got, want)
		}
	}

	// Releasing after the cancel must not produce a click.
	c.ProcessInput(mouseFrame(32, 10, 10, false))
	if l.has("mouse:click") || l.has("mouse:up") {
		t.Errorf("release after cancel = %v", l.events)
	}
}

func TestUnfocusedFramesIgnorePointers(t *testing.T) {
	c, l := newInputChart()
	f := mouseFrame(0, 10, 10, true)
	f.Unfocused = true
	c.ProcessInput(f)
	if l.has("pointer0:down") {
		t.Errorf("unfocused press dispatched: %v", l.events)
	}
}

func TestPinch(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 50, Y: 100}, {ID: 2, X: 150, Y: 100}}})
	if len(l.pinches) != 0 {
		t.Fatalf("pinch reported on the first frame: %v", l.pinches)
	}

	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 100}, {ID: 2, X: 200, Y: 100}}})
	if len(l.pinches) != 1 {
		t.Fatalf("pinches = %d, want 1", len(l.pinches))
	}
	ev := l.pinches[0]
	assertNear(t, "Scale", ev.Scale, 2)
	assertNear(t, "ScaleDelta", ev.ScaleDelta, 1)
	assertNear(t, "CenterX", ev.CenterX, 100)
	assertNear(t, "CenterY", ev.CenterY, 100)
	assertNear(t, "Rotation", ev.Rotation, 0)

	// Rotate the second finger a quarter turn around the first, same distance.
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 100}, {ID: 2, X: 0, Y: 300}}})
	ev = l.pinches[1]
	assertNear(t, "Scale after rotation", ev.Scale, 2)
	assertNear(t, "ScaleDelta after rotation", ev.ScaleDelta, 0)
	assertNear(t, "Rotation", ev.Rotation, math.Pi/2)
	assertNear(t, "RotationDelta", ev.RotationDelta, math.Pi/2)

	// Unchanged touches report nothing.
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 100}, {ID: 2, X: 0, Y: 300}}})
	if len(l.pinches) != 2 {
		t.Errorf("pinches = %d after an unchanged frame, want 2", len(l.pinches))
	}
}

func TestPinchEndsAndRestarts(t *testing.T) {
	c, l := newInputChart()
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 100, Y: 0}}})
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 0}}})
	if c.input.pinch.active {
		t.Fatal("pinch still active with one touch")
	}

	// A new second finger starts a new gesture measured from its own
	// initial distance.
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 0}, {ID: 3, X: 10, Y: 0}}})
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 0}, {ID: 3, X: 20, Y: 0}}})
	if len(l.pinches) != 1 {
		t.Fatalf("pinches = %d, want 1", len(l.pinches))
	}
	assertNear(t, "Scale", l.pinches[0].Scale, 2)

	// Three fingers are not a pinch.
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 0}, {ID: 3, X: 40, Y: 0}, {ID: 4, X: 5, Y: 5}}})
	if len(l.pinches) != 1 || c.input.pinch.active {
		t.Errorf("three touches reported a pinch: %v", l.pinches)
	}
}

func TestPinchZoomsChart(t *testing.T) {
	c := NewChart(newFakeSurface(400, 400), DefaultConfig())
	c.AddLayer(NewNavigationLayer(c.Zoom()))
	c.Tick(0, 0)

	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 50, Y: 100}, {ID: 2, X: 150, Y: 100}}})
	c.ProcessInput(InputFrame{Touches: []Touch{{ID: 1, X: 0, Y: 100}, {ID: 2, X: 200, Y: 100}}})

	zx, zy := c.Zoom().Zoom()
	assertNear(t, "zoomX", zx, 2)
	assertNear(t, "zoomY", zy, 2)
	tx, ty := c.Zoom().Translation()
	assertNear(t, "translationX", tx, -100)
	assertNear(t, "translationY", ty, -100)
	if !c.Loop().IsDirty() {
		t.Error("pinch zoom did not mark the chart dirty")
	}
}
