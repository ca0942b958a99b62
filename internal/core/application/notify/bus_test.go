package notify_test

import (
	"io"
	"log/slog"
	"testing"

	"tableside/internal/core/application/notify"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	name   string
	log    *[]string
	events []notify.TableStatusChanged
}

func (l *recordingListener) TableStatusChanged(event notify.TableStatusChanged) {
	l.events = append(l.events, event)
	*l.log = append(*l.log, l.name)
}

type panickingListener struct{}

func (l *panickingListener) TableStatusChanged(notify.TableStatusChanged) {
	panic("render failure")
}

func newTestBus(dispatch notify.Dispatcher) *notify.Bus {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewBus(dispatch, logger)
}

func testEvent() notify.TableStatusChanged {
	return notify.TableStatusChanged{TableID: kernel.NewUUID(), Status: table.Occupied}
}

func TestBus_Publish(t *testing.T) {
	t.Run("delivers to every listener in subscription order", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string
		first := &recordingListener{name: "first", log: &log}
		second := &recordingListener{name: "second", log: &log}
		bus.Subscribe(first)
		bus.Subscribe(second)

		event := testEvent()
		bus.Publish(event)

		assert.Equal(t, []string{"first", "second"}, log)
		require.Len(t, first.events, 1)
		assert.True(t, first.events[0].TableID.IsEqual(event.TableID))
		assert.Equal(t, table.Occupied, first.events[0].Status)
	})

	t.Run("delivers exactly once per event", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string
		listener := &recordingListener{name: "l", log: &log}
		bus.Subscribe(listener)

		bus.Publish(testEvent())
		bus.Publish(testEvent())

		assert.Len(t, listener.events, 2)
	})
}

func TestBus_Subscribe(t *testing.T) {
	t.Run("subscribing twice has the effect of once", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string
		listener := &recordingListener{name: "l", log: &log}

		bus.Subscribe(listener)
		bus.Subscribe(listener)
		bus.Publish(testEvent())

		assert.Len(t, listener.events, 1)
	})

	t.Run("nil listener is ignored", func(t *testing.T) {
		bus := newTestBus(nil)

		bus.Subscribe(nil)
		bus.Publish(testEvent())
	})
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Run("stops further delivery", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string
		listener := &recordingListener{name: "l", log: &log}
		bus.Subscribe(listener)
		bus.Publish(testEvent())

		bus.Unsubscribe(listener)
		bus.Publish(testEvent())

		assert.Len(t, listener.events, 1)
	})

	t.Run("unknown listener is a no-op", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string

		bus.Unsubscribe(&recordingListener{name: "l", log: &log})
	})
}

func TestBus_PanicIsolation(t *testing.T) {
	t.Run("a panicking listener does not stop delivery", func(t *testing.T) {
		bus := newTestBus(nil)
		var log []string
		before := &recordingListener{name: "before", log: &log}
		after := &recordingListener{name: "after", log: &log}
		bus.Subscribe(before)
		bus.Subscribe(&panickingListener{})
		bus.Subscribe(after)

		bus.Publish(testEvent())

		assert.Equal(t, []string{"before", "after"}, log)
	})
}

func TestBus_Dispatcher(t *testing.T) {
	t.Run("custom dispatcher receives the event as a hint", func(t *testing.T) {
		var hints []notify.TableStatusChanged
		dispatch := func(event notify.TableStatusChanged, deliver func()) {
			hints = append(hints, event)
			deliver()
		}
		bus := newTestBus(dispatch)
		var log []string
		listener := &recordingListener{name: "l", log: &log}
		bus.Subscribe(listener)

		event := testEvent()
		bus.Publish(event)

		require.Len(t, hints, 1)
		assert.True(t, hints[0].TableID.IsEqual(event.TableID))
		assert.Len(t, listener.events, 1)
	})
}
