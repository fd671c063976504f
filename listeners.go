package meistercharts

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id      uint32
	remover listenerRemover
}

type listenerRemover interface {
	scheduleRemoval(id uint32)
}

// Remove unregisters the listener. The removal takes effect at the start of
// the next iteration over the list, so calling Remove from inside the
// listener itself (or any other listener of the same list) never disturbs
// the iteration in progress. Calling Remove more than once is harmless.
func (h ListenerHandle) Remove() {
	if h.remover == nil {
		return
	}
	h.remover.scheduleRemoval(h.id)
}

type listenerEntry[F any] struct {
	id uint32
	fn F
}

// listenerList is an ordered list of callbacks with deferred removal.
// Additions take effect immediately; removals are queued and applied at
// the sync point before the next outermost iteration. No per-iteration copy
// is made.
type listenerList[F any] struct {
	entries   []listenerEntry[F]
	pending   []uint32
	nextID    uint32
	iterating int
}

func (l *listenerList[F]) add(fn F) ListenerHandle {
	l.nextID++
	l.entries = append(l.entries, listenerEntry[F]{id: l.nextID, fn: fn})
	return ListenerHandle{id: l.nextID, remover: l}
}

func (l *listenerList[F]) scheduleRemoval(id uint32) {
	for _, p := range l.pending {
		if p == id {
			return
		}
	}
	l.pending = append(l.pending, id)
}

// sync applies queued removals. Only the outermost iteration syncs; a
// re-entrant iteration would otherwise compact the slice under its caller.
func (l *listenerList[F]) sync() {
	if len(l.pending) == 0 || l.iterating > 0 {
		return
	}
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !l.isPending(e.id) {
			kept = append(kept, e)
		}
	}
	var zero listenerEntry[F]
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = zero
	}
	l.entries = kept
	l.pending = l.pending[:0]
}

func (l *listenerList[F]) isPending(id uint32) bool {
	for _, p := range l.pending {
		if p == id {
			return true
		}
	}
	return false
}

// each syncs and then calls visit for every listener in registration order.
// Listeners added during the iteration are appended and reached in the same
// iteration; compaction only happens in sync, so indices stay valid.
func (l *listenerList[F]) each(visit func(F)) {
	l.sync()
	l.iterating++
	defer func() { l.iterating-- }()
	for i := 0; i < len(l.entries); i++ {
		visit(l.entries[i].fn)
	}
}

// len returns the number of listeners not scheduled for removal.
func (l *listenerList[F]) len() int {
	n := 0
	for _, e := range l.entries {
		if !l.isPending(e.id) {
			n++
		}
	}
	return n
}
