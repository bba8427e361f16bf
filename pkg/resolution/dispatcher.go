package resolution

import (
	"sync"

	errUtils "github.com/cloudposse/depwhy/errors"
	"github.com/cloudposse/depwhy/pkg/perf"
)

type subscription struct {
	id       uint64
	listener Listener
}

// Dispatcher delivers events to the listeners subscribed to their type.
// Dispatch may be called from many goroutines at once; delivery happens on the caller's goroutine.
type Dispatcher struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[EventType][]subscription
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[EventType][]subscription)}
}

// Subscribe registers l for events of type t and returns the function that removes it.
// The returned function is safe to call more than once.
func (d *Dispatcher) Subscribe(t EventType, l Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.subs[t] = append(d.subs[t], subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() { d.unsubscribe(t, id) })
	}
}

func (d *Dispatcher) unsubscribe(t EventType, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.subs[t]
	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	d.subs[t] = kept
}

// Listeners returns the number of listeners subscribed to t.
func (d *Dispatcher) Listeners(t EventType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs[t])
}

// Dispatch delivers event to its listeners in subscription order.
// The first listener error stops delivery and is returned.
func (d *Dispatcher) Dispatch(event *Event) error {
	defer perf.Track("resolution.Dispatcher.Dispatch")()

	if event == nil {
		return errUtils.ErrNilEvent
	}

	// Snapshot so listeners may unsubscribe while handling.
	d.mu.RLock()
	subs := d.subs[event.Type]
	d.mu.RUnlock()

	for _, s := range subs {
		if err := s.listener.Handle(event); err != nil {
			return errUtils.Build(errUtils.ErrListenerFailed).
				WithCause(err).
				WithContext("event", event.Type.String()).
				WithContext("artifact", event.Artifact.String()).
				Err()
		}
	}
	return nil
}
