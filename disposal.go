package meistercharts

// Disposer runs cleanup actions once. A second Dispose is a usage error.
type Disposer struct {
	actions  []func()
	disposed bool
}

// OnDispose registers an action. Actions run in reverse registration order,
// like deferred calls. Registering on a disposed Disposer runs the action
// immediately.
func (d *Disposer) OnDispose(action func()) {
	if d.disposed {
		action()
		return
	}
	d.actions = append(d.actions, action)
}

// Dispose runs all registered actions. Panics with ErrAlreadyDisposed when
// called twice.
func (d *Disposer) Dispose() {
	if d.disposed {
		usagePanic("dispose", ErrAlreadyDisposed, "")
	}
	d.disposed = true
	for i := len(d.actions) - 1; i >= 0; i-- {
		d.actions[i]()
		d.actions[i] = nil
	}
	d.actions = nil
}

// Disposed reports whether Dispose has been called.
func (d *Disposer) Disposed() bool { return d.disposed }
