// Package notify provides the change-notification list used by the
// in-memory models. Listeners run synchronously on the goroutine that
// performed the mutation.
package notify

// Emitter is a list of change listeners. The zero value is ready to use.
type Emitter struct {
	listeners []func()
}

// Subscribe registers fn and returns a function that unregisters it.
func (e *Emitter) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	e.listeners = append(e.listeners, fn)
	idx := len(e.listeners) - 1
	return func() {
		if idx < len(e.listeners) {
			e.listeners[idx] = nil
		}
	}
}

// Emit calls every registered listener in subscription order.
func (e *Emitter) Emit() {
	for _, fn := range e.listeners {
		if fn != nil {
			fn()
		}
	}
}

// Len returns the number of active listeners.
func (e *Emitter) Len() int {
	n := 0
	for _, fn := range e.listeners {
		if fn != nil {
			n++
		}
	}
	return n
}
