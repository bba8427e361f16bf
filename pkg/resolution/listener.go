package resolution

// Listener receives resolution events synchronously on the dispatching goroutine.
// A returned error is propagated to the resolution engine.
type Listener interface {
	Handle(event *Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event *Event) error

// Handle calls f(event).
func (f ListenerFunc) Handle(event *Event) error {
	return f(event)
}
