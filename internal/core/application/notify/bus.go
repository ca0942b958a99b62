// Package notify implements the in-process notification bus for table-status
// change events. Presentation collaborators subscribe to it and render what
// they receive; the core never knows what a listener does with an event.
package notify

import (
	"log/slog"
	"sync"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
)

// TableStatusChanged is the event published after every successful table
// status mutation.
type TableStatusChanged struct {
	TableID kernel.UUID
	Status  table.Status
}

// Listener receives table-status change events. Implementations must be
// comparable (pointer receivers) so that subscription can be idempotent.
type Listener interface {
	TableStatusChanged(event TableStatusChanged)
}

// Dispatcher runs a single delivery. A presentation layer supplies its own
// dispatcher to marshal deliveries onto whatever execution context it
// requires (a UI loop, a websocket writer); the event is passed alongside as
// a delivery hint. The core makes no threading assumptions beyond calling
// dispatchers sequentially, in listener registration order.
type Dispatcher func(event TableStatusChanged, deliver func())

// InlineDispatcher runs deliveries synchronously on the publishing goroutine.
// It is the default, and the one tests use.
func InlineDispatcher(_ TableStatusChanged, deliver func()) {
	deliver()
}

// Bus maintains the set of registered listeners and fans events out to them.
//
// Delivery guarantees:
//   - every published event reaches every listener subscribed at publish
//     time, exactly once, in subscription order
//   - a panicking listener is reported and skipped; delivery to the
//     remaining listeners continues
//   - subscribing twice has the effect of once; unsubscribing an unknown
//     listener is a no-op
type Bus struct {
	mu        sync.Mutex
	listeners []Listener
	dispatch  Dispatcher
	logger    *slog.Logger
}

// NewBus creates a bus using the given dispatcher. A nil dispatcher falls
// back to InlineDispatcher.
func NewBus(dispatch Dispatcher, logger *slog.Logger) *Bus {
	if dispatch == nil {
		dispatch = InlineDispatcher
	}
	return &Bus{
		dispatch: dispatch,
		logger:   logger.With("component", "notification_bus"),
	}
}

// Subscribe registers a listener. Subscribing an already registered listener
// keeps its original position.
func (b *Bus) Subscribe(listener Listener) {
	if listener == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, registered := range b.listeners {
		if registered == listener {
			return
		}
	}
	b.listeners = append(b.listeners, listener)
}

// Unsubscribe removes a listener. Removing an unknown listener is a no-op.
// Events already dispatched are unaffected.
func (b *Bus) Unsubscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, registered := range b.listeners {
		if registered == listener {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every registered listener in subscription
// order. The listener set is snapshotted first, so subscription changes made
// by a listener during delivery take effect from the next publish.
func (b *Bus) Publish(event TableStatusChanged) {
	b.mu.Lock()
	snapshot := make([]Listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, listener := range snapshot {
		b.deliverTo(listener, event)
	}
}

// deliverTo runs one delivery through the dispatcher, isolating listener
// panics so one failing observer cannot starve the rest.
func (b *Bus) deliverTo(listener Listener, event TableStatusChanged) {
	b.dispatch(event, func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("listener panicked during table status delivery",
					"table_id", event.TableID.String(),
					"status", event.Status.String(),
					"panic", r,
				)
			}
		}()
		listener.TableStatusChanged(event)
	})
}
