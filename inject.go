package meistercharts

// syntheticPointerEvent is a single injected mouse event in window
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a left-button press at (x, y). The event is consumed by
// the next ProcessInput call and replaces the real mouse for that frame.
func (c *Chart) InjectPress(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move to (x, y) with the button held down. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (c *Chart) InjectMove(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at (x, y).
func (c *Chart) InjectRelease(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (c *Chart) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (c *Chart) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectKey queues a key press and release of key. A non-zero char also
// produces a KeyType event between them. All are dispatched on the next
// ProcessInput call.
func (c *Chart) InjectKey(key string, char rune) {
	q := append(c.input.keyQueue, KeyEvent{Type: KeyDown, Key: key})
	if char != 0 {
		q = append(q, KeyEvent{Type: KeyType, Char: char})
	}
	c.input.keyQueue = append(q, KeyEvent{Type: KeyUp, Key: key})
}

// pendingInjections reports how many synthetic pointer events are queued.
func (c *Chart) pendingInjections() int { return len(c.input.injectQueue) }

// processInjectedInput pops one synthetic pointer event and feeds it to the
// mouse pointer. Returns true if an event was consumed.
func (c *Chart) processInjectedInput(ts float64, mods KeyModifiers) bool {
	q := c.input.injectQueue
	if len(q) == 0 {
		return false
	}
	evt := q[0]
	copy(q, q[1:])
	c.input.injectQueue = q[:len(q)-1]

	c.processPointer(0, evt.x, evt.y, true, evt.pressed, evt.button, false, ts, mods)
	return true
}
