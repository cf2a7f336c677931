// Package event provides listener registration and dispatch for the regions
// a trimmer binds to.
package event

import (
	"sync"
)

// Type identifies the kind of an event.
type Type string

const (
	PointerDown Type = "pointerdown"
	PointerMove Type = "pointermove"
	PointerUp   Type = "pointerup"
	Click       Type = "click"
)

// Event is a pointer or click event delivered to a Target.
type Event struct {
	Type             Type
	ClientX          float64
	ClientY          float64
	DefaultPrevented bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.DefaultPrevented = true
}

// Handler is a callback registered for an event type.
type Handler func(e *Event)

// ListenerID identifies a registered listener. IDs are never zero.
type ListenerID int

// eventListener represents a registered event listener.
type eventListener struct {
	id      ListenerID
	handler Handler
}

// Target manages event listeners for a single region.
type Target struct {
	name      string
	listeners map[Type][]eventListener
	nextID    ListenerID
	mu        sync.RWMutex
}

// NewTarget creates a new Target. The name is used only for diagnostics.
func NewTarget(name string) *Target {
	return &Target{
		name:      name,
		listeners: make(map[Type][]eventListener),
	}
}

// Name returns the target's diagnostic name.
func (t *Target) Name() string {
	return t.name
}

// AddEventListener registers a handler and returns the ID needed to remove it.
func (t *Target) AddEventListener(typ Type, handler Handler) ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.listeners[typ] = append(t.listeners[typ], eventListener{
		id:      t.nextID,
		handler: handler,
	})
	return t.nextID
}

// RemoveEventListener unregisters a listener. It reports whether the
// listener was registered.
func (t *Target) RemoveEventListener(typ Type, id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	listeners := t.listeners[typ]
	for i, l := range listeners {
		if l.id == id {
			t.listeners[typ] = append(listeners[:i:i], listeners[i+1:]...)
			if len(t.listeners[typ]) == 0 {
				delete(t.listeners, typ)
			}
			return true
		}
	}
	return false
}

// Dispatch delivers the event to every listener registered for its type,
// in registration order. Listeners added or removed during dispatch take
// effect on the next dispatch. Returns false if the default was prevented.
func (t *Target) Dispatch(e *Event) bool {
	t.mu.RLock()
	listeners := make([]eventListener, len(t.listeners[e.Type]))
	copy(listeners, t.listeners[e.Type])
	t.mu.RUnlock()

	for _, l := range listeners {
		l.handler(e)
	}

	return !e.DefaultPrevented
}

// ListenerCount returns the number of listeners registered for the type.
func (t *Target) ListenerCount(typ Type) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[typ])
}

// Len returns the total number of listeners across all event types.
func (t *Target) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, ls := range t.listeners {
		n += len(ls)
	}
	return n
}
