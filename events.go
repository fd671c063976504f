package meistercharts

// EventCategory groups event types by the handler capability that receives
// them.
type EventCategory uint8

const (
	CategoryMouse   EventCategory = iota // MouseHandler
	CategoryKey                          // KeyHandler
	CategoryPointer                      // PointerHandler
	CategoryTouch                        // TouchHandler
	CategoryPinch                        // PinchHandler
)

var categoryNames = [...]string{"mouse", "key", "pointer", "touch", "pinch"}

func (c EventCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MouseEventType identifies a mouse event.
type MouseEventType uint8

const (
	MouseClick       MouseEventType = iota // press then release without dragging
	MouseDown                              // button pressed
	MouseUp                                // button released
	MouseDoubleClick                       // second click within the double-click interval
	MouseMove                              // cursor moved with no button held
	MouseDrag                              // cursor moved with a button held
	MouseWheel                             // wheel scrolled
)

var mouseEventNames = [...]string{"click", "down", "up", "double-click", "move", "drag", "wheel"}

func (t MouseEventType) String() string {
	if int(t) < len(mouseEventNames) {
		return mouseEventNames[t]
	}
	return "unknown"
}

// MouseEvent carries mouse data in window coordinates (logical pixels).
type MouseEvent struct {
	Type      MouseEventType
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// DeltaX/DeltaY hold the movement since the previous drag event for
	// MouseDrag and the scroll amount for MouseWheel.
	DeltaX, DeltaY float64
	Timestamp      float64 // ms
}

// KeyEventType identifies a keyboard event.
type KeyEventType uint8

const (
	KeyDown KeyEventType = iota // key pressed
	KeyUp                       // key released
	KeyType                     // character typed
)

var keyEventNames = [...]string{"down", "up", "type"}

func (t KeyEventType) String() string {
	if int(t) < len(keyEventNames) {
		return keyEventNames[t]
	}
	return "unknown"
}

// KeyEvent carries keyboard data. Key names the physical key for KeyDown
// and KeyUp; Char holds the typed character for KeyType.
type KeyEvent struct {
	Type      KeyEventType
	Key       string
	Char      rune
	Modifiers KeyModifiers
	Timestamp float64
}

// PointerEventType identifies a pointer event. Pointer events are produced
// for the mouse (pointer 0) and for every touch.
type PointerEventType uint8

const (
	PointerOver   PointerEventType = iota // pointer moved onto the surface
	PointerEnter                          // pointer entered the surface
	PointerDown                           // button pressed or finger down
	PointerMove                           // pointer moved
	PointerUp                             // button released or finger lifted
	PointerCancel                         // interaction aborted (focus lost)
	PointerOut                            // pointer moved off the surface
	PointerLeave                          // pointer left the surface
)

var pointerEventNames = [...]string{"over", "enter", "down", "move", "up", "cancel", "out", "leave"}

func (t PointerEventType) String() string {
	if int(t) < len(pointerEventNames) {
		return pointerEventNames[t]
	}
	return "unknown"
}

// PointerEvent carries pointer data in window coordinates.
type PointerEvent struct {
	Type      PointerEventType
	PointerID int // 0 = mouse, 1.. = touches
	IsTouch   bool
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	Timestamp float64
}

// TouchEventType identifies a touch event.
type TouchEventType uint8

const (
	TouchStart  TouchEventType = iota // finger down
	TouchEnd                          // finger lifted
	TouchMove                         // finger moved
	TouchCancel                       // touch aborted (focus lost)
)

var touchEventNames = [...]string{"start", "end", "move", "cancel"}

func (t TouchEventType) String() string {
	if int(t) < len(touchEventNames) {
		return touchEventNames[t]
	}
	return "unknown"
}

// Touch is a single touch point.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchEvent carries the touch that changed and all touches currently down.
// Touches is reused between events; handlers must copy it to retain it.
type TouchEvent struct {
	Type      TouchEventType
	Changed   Touch
	Touches   []Touch
	Modifiers KeyModifiers
	Timestamp float64
}

// PinchEvent reports a two-finger gesture in progress. Scale and Rotation
// are relative to the start of the gesture; ScaleDelta and RotationDelta to
// the previous PinchEvent.
type PinchEvent struct {
	CenterX, CenterY float64 // midpoint of the two touches, window coordinates
	Scale            float64 // current distance / initial distance
	ScaleDelta       float64 // current distance / previous distance - 1
	Rotation         float64 // radians since the gesture started
	RotationDelta    float64 // radians since the previous event
	Modifiers        KeyModifiers
	Timestamp        float64
}

// InputRecord summarises one dispatched event and its outcome.
type InputRecord struct {
	Category    EventCategory
	Type        uint8 // event type of the category; 0 for pinch
	X, Y        float64
	Key         string
	PointerID   int
	Consumption EventConsumption
	// ConsumerIndex is the paint-order index of the consuming layer, or -1.
	ConsumerIndex int
	Timestamp     float64
}

// EventSink receives a record of every dispatched event. Used to bridge
// input into an ECS world.
type EventSink interface {
	EmitEvent(rec InputRecord)
}
