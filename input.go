package meistercharts

import "math"

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels

	// DoubleClickInterval is the longest gap in ms between two clicks that
	// still produces a MouseDoubleClick.
	DoubleClickInterval = 500.0
)

// InputFrame is one polled snapshot of the host's input devices. Positions
// are window coordinates in logical pixels.
type InputFrame struct {
	Timestamp float64 // ms
	// Unfocused is set when the host window lost input focus.
	Unfocused bool

	CursorX, CursorY float64
	CursorInside     bool
	Buttons          [3]bool // indexed by MouseButton
	WheelX, WheelY   float64

	// Touches holds every touch currently down. Touch.ID is the host's id.
	Touches []Touch

	KeysPressed  []string // keys that went down this frame
	KeysReleased []string // keys that went up this frame
	Chars        []rune   // characters typed this frame
	Modifiers    KeyModifiers
}

// pressedButton returns the first pressed button in left, right, middle
// order.
func (f *InputFrame) pressedButton() (MouseButton, bool) {
	for i, down := range f.Buttons {
		if down {
			return MouseButton(i), true
		}
	}
	return MouseButtonLeft, false
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	inside   bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	button   MouseButton // captured at press time
}

type clickState struct {
	valid  bool
	time   float64
	x, y   float64
	button MouseButton
}

// --- Pinch state ---

type pinchState struct {
	active       bool
	pointer0     int
	pointer1     int
	initialDist  float64
	initialAngle float64
	prevDist     float64
	prevAngle    float64
}

// inputState translates successive InputFrames into events.
type inputState struct {
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]int
	touchUsed    [maxPointers]bool
	touchBuf     []Touch
	lastClick    clickState
	pinch        pinchState
	dragDeadZone float64
	unfocused    bool

	injectQueue []syntheticPointerEvent
	keyQueue    []KeyEvent
}

// SetDragDeadZone sets the distance in pixels a pressed pointer must move
// before drag events start. Clicks are only reported below it.
func (c *Chart) SetDragDeadZone(pixels float64) {
	c.input.dragDeadZone = pixels
}

// ProcessInput translates one input snapshot into mouse, pointer, touch and
// key events and routes them through the layer stack. Call it once per
// host update, before Tick.
func (c *Chart) ProcessInput(f InputFrame) {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	in := &c.input
	mods := f.Modifiers

	if f.Unfocused && !in.unfocused {
		c.cancelPointers(f.Timestamp, mods)
	}
	in.unfocused = f.Unfocused

	if !c.processInjectedInput(f.Timestamp, mods) && !f.Unfocused {
		button, pressed := f.pressedButton()
		c.processPointer(0, f.CursorX, f.CursorY, f.CursorInside || pressed, pressed, button, false, f.Timestamp, mods)
	}
	if !f.Unfocused {
		if f.WheelX != 0 || f.WheelY != 0 {
			c.layers.DispatchMouse(MouseEvent{
				Type: MouseWheel, X: f.CursorX, Y: f.CursorY,
				DeltaX: f.WheelX, DeltaY: f.WheelY,
				Modifiers: mods, Timestamp: f.Timestamp,
			})
		}
		c.processTouches(f.Touches, f.Timestamp, mods)
	}
	c.processKeys(&f)
}

// --- Keys ---

// processKeys dispatches queued synthetic keys, then the frame's keys.
func (c *Chart) processKeys(f *InputFrame) {
	in := &c.input
	for _, ev := range in.keyQueue {
		ev.Timestamp = f.Timestamp
		c.layers.DispatchKey(ev)
	}
	in.keyQueue = in.keyQueue[:0]

	for _, k := range f.KeysPressed {
		c.layers.DispatchKey(KeyEvent{Type: KeyDown, Key: k, Modifiers: f.Modifiers, Timestamp: f.Timestamp})
	}
	for _, r := range f.Chars {
		c.layers.DispatchKey(KeyEvent{Type: KeyType, Char: r, Modifiers: f.Modifiers, Timestamp: f.Timestamp})
	}
	for _, k := range f.KeysReleased {
		c.layers.DispatchKey(KeyEvent{Type: KeyUp, Key: k, Modifiers: f.Modifiers, Timestamp: f.Timestamp})
	}
}

// --- Touches ---

// processTouches maps host touch ids to pointer slots 1-9, runs the pointer
// state machine for each and then looks for a pinch.
func (c *Chart) processTouches(touches []Touch, ts float64, mods KeyModifiers) {
	in := &c.input
	in.touchBuf = append(in.touchBuf[:0], touches...)

	var active [maxPointers]bool
	for _, t := range touches {
		slot := c.touchSlot(t.ID)
		if slot < 0 {
			continue
		}
		active[slot] = true
		c.processPointer(slot, t.X, t.Y, true, true, MouseButtonLeft, true, ts, mods)
	}

	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			ps := &in.pointers[i]
			if ps.down {
				c.processPointer(i, ps.lastX, ps.lastY, false, false, MouseButtonLeft, true, ts, mods)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	c.detectPinch(ts, mods)
}

// touchSlot returns the slot mapped to a host touch id, allocating one if
// needed. Returns -1 when all slots are taken.
func (c *Chart) touchSlot(id int) int {
	in := &c.input
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == id {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = id
			return i
		}
	}
	return -1
}

// cancelPointers aborts every active interaction, used when focus is lost.
func (c *Chart) cancelPointers(ts float64, mods KeyModifiers) {
	in := &c.input
	for i := range in.pointers {
		ps := &in.pointers[i]
		touch := i > 0
		if ps.down {
			c.layers.DispatchPointer(PointerEvent{
				Type: PointerCancel, PointerID: i, IsTouch: touch,
				X: ps.lastX, Y: ps.lastY, Button: ps.button,
				Modifiers: mods, Timestamp: ts,
			})
			if touch {
				c.dispatchTouch(TouchCancel, i, ps.lastX, ps.lastY, ts, mods)
			}
		}
		*ps = pointerState{inside: ps.inside && !touch, lastX: ps.lastX, lastY: ps.lastY}
		if touch {
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	in.touchBuf = in.touchBuf[:0]
	in.lastClick = clickState{}
	in.pinch = pinchState{}
}

func (c *Chart) dispatchTouch(typ TouchEventType, slot int, x, y, ts float64, mods KeyModifiers) {
	c.layers.DispatchTouch(TouchEvent{
		Type:      typ,
		Changed:   Touch{ID: c.input.touchMap[slot], X: x, Y: y},
		Touches:   c.input.touchBuf,
		Modifiers: mods,
		Timestamp: ts,
	})
}

// --- Pinch detection ---

// detectPinch starts a gesture when exactly two touches are down and emits a
// PinchEvent for every later frame in which they stay down. Any other number
// of touches ends the gesture.
func (c *Chart) detectPinch(ts float64, mods KeyModifiers) {
	in := &c.input
	p0, p1, count := 0, 0, 0
	for i := 1; i < maxPointers; i++ {
		if !in.pointers[i].down {
			continue
		}
		switch count {
		case 0:
			p0 = i
		case 1:
			p1 = i
		}
		count++
	}
	if count != 2 {
		in.pinch.active = false
		return
	}

	ps0, ps1 := &in.pointers[p0], &in.pointers[p1]
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)

	pinch := &in.pinch
	if !pinch.active || pinch.pointer0 != p0 || pinch.pointer1 != p1 {
		*pinch = pinchState{
			active: true, pointer0: p0, pointer1: p1,
			initialDist: dist, initialAngle: angle,
			prevDist: dist, prevAngle: angle,
		}
		return
	}
	if dist == pinch.prevDist && angle == pinch.prevAngle {
		return
	}

	ev := PinchEvent{
		CenterX:       (ps0.lastX + ps1.lastX) / 2,
		CenterY:       (ps0.lastY + ps1.lastY) / 2,
		Scale:         1,
		Rotation:      angle - pinch.initialAngle,
		RotationDelta: angle - pinch.prevAngle,
		Modifiers:     mods,
		Timestamp:     ts,
	}
	if pinch.initialDist > 0 {
		ev.Scale = dist / pinch.initialDist
	}
	if pinch.prevDist > 0 {
		ev.ScaleDelta = dist/pinch.prevDist - 1
	}
	pinch.prevDist = dist
	pinch.prevAngle = angle
	c.layers.DispatchPinch(ev)
}

// --- Pointer state machine ---

// processPointer runs the pointer state machine for a single pointer.
func (c *Chart) processPointer(id int, x, y float64, inside, pressed bool, button MouseButton, touch bool, ts float64, mods KeyModifiers) {
	in := &c.input
	ps := &in.pointers[id]
	pe := PointerEvent{PointerID: id, IsTouch: touch, X: x, Y: y, Button: button, Modifiers: mods, Timestamp: ts}
	pointer := func(t PointerEventType) {
		pe.Type = t
		c.layers.DispatchPointer(pe)
	}
	mouse := func(t MouseEventType, dx, dy float64) {
		if !touch {
			c.layers.DispatchMouse(MouseEvent{Type: t, X: x, Y: y, Button: ps.button, Modifiers: mods, DeltaX: dx, DeltaY: dy, Timestamp: ts})
		}
	}

	if inside && !ps.inside {
		ps.inside = true
		pointer(PointerOver)
		pointer(PointerEnter)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		pointer(PointerDown)
		mouse(MouseDown, 0, 0)
		if touch {
			c.dispatchTouch(TouchStart, id, x, y, ts, mods)
		}

	case !pressed && ps.down:
		pe.Button = ps.button
		pointer(PointerUp)
		mouse(MouseUp, 0, 0)
		if touch {
			c.dispatchTouch(TouchEnd, id, x, y, ts, mods)
		} else if !ps.dragging {
			mouse(MouseClick, 0, 0)
			if c.isDoubleClick(x, y, ts, ps.button) {
				mouse(MouseDoubleClick, 0, 0)
			}
		}
		ps.down = false
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			pe.Button = ps.button
			pointer(PointerMove)
			if touch {
				c.dispatchTouch(TouchMove, id, x, y, ts, mods)
			} else {
				if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > in.deadZone() {
					ps.dragging = true
				}
				if ps.dragging {
					mouse(MouseDrag, x-ps.lastX, y-ps.lastY)
				}
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		if inside && (x != ps.lastX || y != ps.lastY) {
			pointer(PointerMove)
			mouse(MouseMove, 0, 0)
		}
		ps.lastX, ps.lastY = x, y
	}

	if ps.inside && (!inside || (touch && !ps.down)) {
		ps.inside = false
		pointer(PointerOut)
		pointer(PointerLeave)
	}
}

// --- Clicks ---

func (in *inputState) deadZone() float64 {
	if in.dragDeadZone < 0 {
		return 0
	}
	return in.dragDeadZone
}

// isDoubleClick records a click and reports whether it completes a double
// click with the previous one.
func (c *Chart) isDoubleClick(x, y, ts float64, button MouseButton) bool {
	in := &c.input
	prev := in.lastClick
	if prev.valid && prev.button == button &&
		ts-prev.time <= DoubleClickInterval &&
		math.Hypot(x-prev.x, y-prev.y) <= in.deadZone() {
		in.lastClick = clickState{}
		return true
	}
	in.lastClick = clickState{valid: true, time: ts, x: x, y: y, button: button}
	return false
}
