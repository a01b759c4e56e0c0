// Package event is a synchronous event dispatcher. Handlers run in
// registration order on the caller's goroutine; Trigger returns once every
// handler has returned.
package event

// Func handles an event. src is the dispatcher that triggered it.
type Func func(src *Handler, args ...any)

// ListenerID identifies a registered handler for RemoveListener.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Func
}

// Handler holds event listeners. The zero value is ready to use. A Handler
// is not safe for concurrent use.
type Handler struct {
	next   ListenerID
	events map[string][]listener
}

// Listen registers fn for the named event.
func (h *Handler) Listen(name string, fn Func) ListenerID {
	if h.events == nil {
		h.events = make(map[string][]listener)
	}
	h.next++
	h.events[name] = append(h.events[name], listener{id: h.next, fn: fn})
	return h.next
}

// ListenAll registers every handler of the map under its key.
func (h *Handler) ListenAll(handlers map[string]Func) map[string]ListenerID {
	ids := make(map[string]ListenerID, len(handlers))
	for name, fn := range handlers {
		ids[name] = h.Listen(name, fn)
	}
	return ids
}

// Trigger calls the handlers of the named event with args. Handlers added
// or removed while the event is dispatched take effect on the next Trigger.
func (h *Handler) Trigger(name string, args ...any) {
	ls := h.events[name]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(h, args...)
	}
}

// RemoveListener unregisters the handler with the given id. Unknown ids
// are ignored.
func (h *Handler) RemoveListener(name string, id ListenerID) {
	ls := h.events[name]
	for i, l := range ls {
		if l.id == id {
			h.events[name] = append(ls[:i:i], ls[i+1:]...)
			if len(h.events[name]) == 0 {
				delete(h.events, name)
			}
			return
		}
	}
}

// Has reports whether any handler listens to the named event.
func (h *Handler) Has(name string) bool {
	return len(h.events[name]) > 0
}

// Reset removes every listener.
func (h *Handler) Reset() {
	h.events = nil
}
