package wikigo

import (
	"reflect"
	"sync"
)

// Event types dispatched by the store.
const (
	// EventChange carries one coalesced ChangeSet per scheduler tick.
	EventChange = "change"

	// EventLazyLoad fires synchronously when text is requested for a title
	// whose body is pending external resolution. Args: the title.
	EventLazyLoad = "lazyLoad"
)

// Listener receives dispatched events. The argument list depends on the
// event type; the typed OnChange/OnLazyLoad helpers avoid dealing with it.
type Listener func(args ...any)

type listenerEntry struct {
	id uint64
	fn Listener
}

// eventBus is a minimal synchronous listener registry.
type eventBus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]listenerEntry
}

func newEventBus() *eventBus {
	return &eventBus{listeners: make(map[string][]listenerEntry)}
}

func (b *eventBus) add(eventType string, fn Listener) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[eventType] = append(b.listeners[eventType], listenerEntry{id: b.nextID, fn: fn})
	return b.nextID
}

// remove drops the first registration whose function matches fn. Matching is
// by function identity (code pointer), so pass the same value that was
// registered.
func (b *eventBus) remove(eventType string, fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ptr := reflect.ValueOf(fn).Pointer()
	ls := b.listeners[eventType]
	for i, l := range ls {
		if reflect.ValueOf(l.fn).Pointer() == ptr {
			b.listeners[eventType] = append(append([]listenerEntry{}, ls[:i]...), ls[i+1:]...)
			return
		}
	}
}

// removeID drops the registration with the given id.
func (b *eventBus) removeID(eventType string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[eventType]
	for i, l := range ls {
		if l.id == id {
			b.listeners[eventType] = append(append([]listenerEntry{}, ls[:i]...), ls[i+1:]...)
			return
		}
	}
}

// dispatch invokes all currently-registered listeners for the type,
// synchronously, in registration order. Listeners added or removed during a
// dispatch take effect on the next dispatch: iteration runs over a snapshot.
func (b *eventBus) dispatch(eventType string, args ...any) {
	b.mu.Lock()
	snapshot := make([]listenerEntry, len(b.listeners[eventType]))
	copy(snapshot, b.listeners[eventType])
	b.mu.Unlock()

	for _, l := range snapshot {
		l.fn(args...)
	}
}

// AddListener registers a listener for an event type.
func (s *Store) AddListener(eventType string, fn Listener) {
	s.events.add(eventType, fn)
}

// RemoveListener removes the first registration of fn for the event type.
// Distinct closures created from the same function literal share a code
// pointer and are indistinguishable here; prefer the remove funcs returned by
// OnChange/OnLazyLoad when that matters.
func (s *Store) RemoveListener(eventType string, fn Listener) {
	s.events.remove(eventType, fn)
}

// Dispatch synchronously invokes listeners for an event type. Exposed for
// hosts that layer their own events over the store's bus.
func (s *Store) Dispatch(eventType string, args ...any) {
	s.events.dispatch(eventType, args...)
}

// OnChange registers a typed change listener and returns a removal func.
func (s *Store) OnChange(fn func(changes ChangeSet)) (remove func()) {
	id := s.events.add(EventChange, func(args ...any) {
		if len(args) == 1 {
			if cs, ok := args[0].(ChangeSet); ok {
				fn(cs)
			}
		}
	})
	return func() { s.events.removeID(EventChange, id) }
}

// OnLazyLoad registers a typed lazy-load listener and returns a removal func.
func (s *Store) OnLazyLoad(fn func(title string)) (remove func()) {
	id := s.events.add(EventLazyLoad, func(args ...any) {
		if len(args) == 1 {
			if title, ok := args[0].(string); ok {
				fn(title)
			}
		}
	})
	return func() { s.events.removeID(EventLazyLoad, id) }
}
