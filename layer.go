package meistercharts

// Layer is a unit of paintable content. Layers are painted back to front in
// the order they were added to a LayerStack.
//
// A layer may additionally implement any of Layouter, TypedLayer, Hideable,
// MouseHandler, KeyHandler, PointerHandler, TouchHandler and PinchHandler.
type Layer interface {
	Paint(ctx *PaintingContext)
}

// Layouter is implemented by layers that compute layout before painting.
// All layouts of a paint pass run before the first Paint.
type Layouter interface {
	Layout(ctx *PaintingContext)
}

// LayerType selects how the stack prepares the transform for a layer.
type LayerType uint8

const (
	LayerTypeBackground   LayerType = iota // window coordinates
	LayerTypeContent                       // content coordinates: margin, translation and zoom applied
	LayerTypeNotification                  // window coordinates, painted over content
)

// TypedLayer is implemented by layers that are not background layers.
type TypedLayer interface {
	LayerType() LayerType
}

// Hideable is implemented by layers that can be hidden. Hidden layers are
// neither painted nor offered events.
type Hideable interface {
	Visible() bool
}

// --- Handler capabilities ---

// EventContext is passed to event handlers.
type EventContext struct {
	State ChartState
	// Dirty requests a repaint, typically after consuming an event.
	Dirty DirtyMarker
	// LayerIndex is the paint-order index of the layer being asked.
	LayerIndex int
}

// MouseHandler is implemented by layers that react to mouse events.
type MouseHandler interface {
	HandleMouse(ev MouseEvent, ctx *EventContext) EventConsumption
}

// KeyHandler is implemented by layers that react to keyboard events.
type KeyHandler interface {
	HandleKey(ev KeyEvent, ctx *EventContext) EventConsumption
}

// PointerHandler is implemented by layers that react to pointer events.
type PointerHandler interface {
	HandlePointer(ev PointerEvent, ctx *EventContext) EventConsumption
}

// TouchHandler is implemented by layers that react to touch events.
type TouchHandler interface {
	HandleTouch(ev TouchEvent, ctx *EventContext) EventConsumption
}

// PinchHandler is implemented by layers that react to two-finger pinch
// gestures.
type PinchHandler interface {
	HandlePinch(ev PinchEvent, ctx *EventContext) EventConsumption
}

func layerVisible(l Layer) bool {
	if h, ok := l.(Hideable); ok {
		return h.Visible()
	}
	return true
}

func typeOf(l Layer) LayerType {
	if t, ok := l.(TypedLayer); ok {
		return t.LayerType()
	}
	return LayerTypeBackground
}

// --- Layer stack ---

// LayerStack owns an ordered list of layers. Paint order is list order;
// interaction order is the reverse, so the topmost layer gets the first
// chance to consume an event.
//
// Additions take effect immediately: a layer added while the stack is
// painting is painted in the same pass. Removals requested while the stack
// is painting or dispatching are applied before the next pass starts.
type LayerStack struct {
	layers    []Layer
	pending   []Layer
	iterating int

	// cursor is the index of the layer being visited by walk; walking is
	// set while a walk is running.
	cursor  int
	walking bool

	dirty DirtyMarker
	state ChartStateProvider
	sink  EventSink

	ectx []*EventContext // one per dispatch nesting depth
}

// NewLayerStack creates an empty stack. dirty receives DirtyLayersChanged
// when layers are added or removed and is handed to event handlers; state
// supplies the ChartState handed to event handlers. Both may be nil.
func NewLayerStack(dirty DirtyMarker, state ChartStateProvider) *LayerStack {
	return &LayerStack{dirty: dirty, state: state}
}

// SetEventSink sets the optional sink that receives every dispatched event.
func (s *LayerStack) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Add appends a layer on top of the stack.
func (s *LayerStack) Add(l Layer) {
	s.layers = append(s.layers, l)
	s.markDirty(DirtyLayersChanged)
}

// AddAt inserts a layer at index (clamped to [0, Len()]).
func (s *LayerStack) AddAt(index int, l Layer) {
	if index < 0 {
		index = 0
	}
	if index > len(s.layers) {
		index = len(s.layers)
	}
	if s.iterating > 0 {
		// A pass is ranging over the current backing array; insert into a
		// fresh one so the pass does not see shifted elements.
		grown := make([]Layer, 0, len(s.layers)+1)
		grown = append(grown, s.layers[:index]...)
		grown = append(grown, l)
		s.layers = append(grown, s.layers[index:]...)
		if s.walking && index <= s.cursor {
			s.cursor++
		}
	} else {
		s.layers = append(s.layers, nil)
		copy(s.layers[index+1:], s.layers[index:])
		s.layers[index] = l
	}
	s.markDirty(DirtyLayersChanged)
}

// Remove removes a layer. During a paint or dispatch pass the removal is
// deferred until the next pass begins.
func (s *LayerStack) Remove(l Layer) {
	if s.iterating > 0 {
		s.pending = append(s.pending, l)
		return
	}
	s.removeNow(l)
}

func (s *LayerStack) removeNow(l Layer) {
	for i, cur := range s.layers {
		if cur == l {
			copy(s.layers[i:], s.layers[i+1:])
			s.layers[len(s.layers)-1] = nil
			s.layers = s.layers[:len(s.layers)-1]
			s.markDirty(DirtyLayersChanged)
			return
		}
	}
}

// sync applies deferred removals. Nested passes (a handler dispatching
// another event) leave the queue for the outermost pass.
func (s *LayerStack) sync() {
	if s.iterating > 0 || len(s.pending) == 0 {
		return
	}
	for i, l := range s.pending {
		s.removeNow(l)
		s.pending[i] = nil
	}
	s.pending = s.pending[:0]
}

// Layers returns the layers in paint order. The returned slice MUST NOT be
// mutated.
func (s *LayerStack) Layers() []Layer {
	s.sync()
	return s.layers
}

// Len returns the number of layers, including ones pending removal.
func (s *LayerStack) Len() int { return len(s.layers) }

func (s *LayerStack) markDirty(reason DirtyReason) {
	if s.dirty != nil {
		s.dirty.MarkDirty(reason)
	}
}

func (s *LayerStack) chartState() ChartState {
	if s.state == nil {
		return ChartState{}
	}
	return s.state.ChartState()
}

// Paint lays out and then paints all visible layers. It has the signature
// of a paint listener so it can be registered with RenderLoop.OnPaint.
func (s *LayerStack) Paint(ctx *PaintingContext) {
	s.sync()
	s.iterating++
	defer func() { s.iterating-- }()

	s.walk(func(l Layer) {
		if lo, ok := l.(Layouter); ok && layerVisible(l) {
			lo.Layout(ctx)
		}
	})
	// Layers added by a Paint are painted in this pass without a Layout.
	s.walk(func(l Layer) {
		if layerVisible(l) {
			paintLayer(l, ctx)
		}
	})
}

// walk visits the layers in paint order, including layers appended during
// the walk. An insertion at or below the cursor moves the cursor along so no
// layer is visited twice.
func (s *LayerStack) walk(visit func(Layer)) {
	cursor, walking := s.cursor, s.walking
	defer func() { s.cursor, s.walking = cursor, walking }()
	s.walking = true
	for s.cursor = 0; s.cursor < len(s.layers); s.cursor++ {
		visit(s.layers[s.cursor])
	}
}

// --- Painting ---

// paintLayer paints one layer inside its own save/restore scope.
func paintLayer(l Layer, ctx *PaintingContext) {
	ctx.Stack.Save()
	defer ctx.Stack.Restore()
	if typeOf(l) == LayerTypeContent {
		applyContentTransform(ctx)
	}
	l.Paint(ctx)
}

// applyContentTransform moves the origin to the zoomed and translated
// content area. The translation is snapped to device pixels when enabled.
func applyContentTransform(ctx *PaintingContext) {
	st := ctx.State
	ratio := ctx.DevicePixelRatio()
	tx := st.Margin.Left + st.TranslationX
	ty := st.Margin.Top + st.TranslationY
	tx += SnapCorrectionPhysical(tx, ratio, ctx.PixelSnap)
	ty += SnapCorrectionPhysical(ty, ratio, ctx.PixelSnap)
	ctx.Stack.Translate(tx, ty)
	ctx.Stack.Scale(zoomOrOne(st.ZoomX), zoomOrOne(st.ZoomY))
}

func zoomOrOne(z float64) float64 {
	if z == 0 {
		return 1
	}
	return z
}

// --- Built-in layers ---

// FillLayer fills the whole window with a colour. Use it as the bottom
// layer: surfaces keep the previous frame, so something must clear it.
type FillLayer struct {
	Color Color
}

func (l *FillLayer) Paint(ctx *PaintingContext) {
	size := ctx.State.WindowSize
	ctx.FillRect(Rect{Width: size.Width, Height: size.Height}, l.Color)
}
