package meistercharts

// DispatchMouse offers ev to the visible MouseHandler layers, topmost first,
// and stops at the first layer that consumes it.
func (s *LayerStack) DispatchMouse(ev MouseEvent) EventConsumption {
	rec := InputRecord{Category: CategoryMouse, Type: uint8(ev.Type), X: ev.X, Y: ev.Y, Timestamp: ev.Timestamp}
	return s.dispatch(rec, func(l Layer, ctx *EventContext) EventConsumption {
		if h, ok := l.(MouseHandler); ok {
			return h.HandleMouse(ev, ctx)
		}
		return Ignored
	})
}

// DispatchKey offers ev to the visible KeyHandler layers, topmost first.
func (s *LayerStack) DispatchKey(ev KeyEvent) EventConsumption {
	rec := InputRecord{Category: CategoryKey, Type: uint8(ev.Type), Key: ev.Key, Timestamp: ev.Timestamp}
	if ev.Type == KeyType {
		rec.Key = string(ev.Char)
	}
	return s.dispatch(rec, func(l Layer, ctx *EventContext) EventConsumption {
		if h, ok := l.(KeyHandler); ok {
			return h.HandleKey(ev, ctx)
		}
		return Ignored
	})
}

// DispatchPointer offers ev to the visible PointerHandler layers, topmost
// first.
func (s *LayerStack) DispatchPointer(ev PointerEvent) EventConsumption {
	rec := InputRecord{Category: CategoryPointer, Type: uint8(ev.Type), X: ev.X, Y: ev.Y, PointerID: ev.PointerID, Timestamp: ev.Timestamp}
	return s.dispatch(rec, func(l Layer, ctx *EventContext) EventConsumption {
		if h, ok := l.(PointerHandler); ok {
			return h.HandlePointer(ev, ctx)
		}
		return Ignored
	})
}

// DispatchPinch offers ev to the visible PinchHandler layers, topmost first.
func (s *LayerStack) DispatchPinch(ev PinchEvent) EventConsumption {
	rec := InputRecord{Category: CategoryPinch, X: ev.CenterX, Y: ev.CenterY, Timestamp: ev.Timestamp}
	return s.dispatch(rec, func(l Layer, ctx *EventContext) EventConsumption {
		if h, ok := l.(PinchHandler); ok {
			return h.HandlePinch(ev, ctx)
		}
		return Ignored
	})
}

// DispatchTouch offers ev to the visible TouchHandler layers, topmost first.
func (s *LayerStack) DispatchTouch(ev TouchEvent) EventConsumption {
	rec := InputRecord{Category: CategoryTouch, Type: uint8(ev.Type), X: ev.Changed.X, Y: ev.Changed.Y, PointerID: ev.Changed.ID, Timestamp: ev.Timestamp}
	return s.dispatch(rec, func(l Layer, ctx *EventContext) EventConsumption {
		if h, ok := l.(TouchHandler); ok {
			return h.HandleTouch(ev, ctx)
		}
		return Ignored
	})
}

// dispatch walks the layers in reverse paint order. Layers without the
// capability answer Ignored through handle and are passed over.
func (s *LayerStack) dispatch(rec InputRecord, handle func(Layer, *EventContext) EventConsumption) EventConsumption {
	s.sync()
	ctx := s.eventContext(s.iterating)
	s.iterating++
	defer func() { s.iterating-- }()

	*ctx = EventContext{State: s.chartState(), Dirty: s.dirty}

	rec.Consumption = Ignored
	rec.ConsumerIndex = -1

	// Layers added during the walk land above the ones still to be asked.
	layers := s.layers
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !layerVisible(l) {
			continue
		}
		ctx.LayerIndex = i
		if handle(l, ctx) == Consumed {
			rec.Consumption = Consumed
			rec.ConsumerIndex = i
			break
		}
	}

	if s.sink != nil {
		s.sink.EmitEvent(rec)
	}
	return rec.Consumption
}

// eventContext returns the context reserved for a dispatch at the given
// nesting depth. A handler that dispatches another event gets a fresh
// context one level down, so its own context is not overwritten.
func (s *LayerStack) eventContext(depth int) *EventContext {
	for len(s.ectx) <= depth {
		s.ectx = append(s.ectx, new(EventContext))
	}
	return s.ectx[depth]
}
