package pages

import "sync"

// Handler receives the arguments of an emitted event.
type Handler func(args ...any)

// Emitter is a minimal event emitter. The zero value is ready to use.
type Emitter struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

// On registers fn for event. Handlers run in registration order.
func (e *Emitter) On(event string, fn Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = map[string][]Handler{}
	}
	e.handlers[event] = append(e.handlers[event], fn)
}

// Emit calls the handlers of event synchronously. It reports whether any were registered.
func (e *Emitter) Emit(event string, args ...any) bool {
	e.mu.Lock()
	handlers := append([]Handler(nil), e.handlers[event]...)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(args...)
	}
	return len(handlers) > 0
}
