package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	clip := bus.Subscribe(ClipboardChanged)
	all := bus.SubscribeAll()

	bus.Publish(ClipboardChanged, "/C:")
	bus.Publish(UndoChanged, "")

	ev := <-clip
	assert.Equal(t, ClipboardChanged, ev.Type)
	assert.Equal(t, "/C:", ev.Path)
	assert.False(t, ev.Time.IsZero())

	assert.Equal(t, ClipboardChanged, (<-all).Type)
	assert.Equal(t, UndoChanged, (<-all).Type)
	assert.Len(t, clip, 0, "undo events do not reach clipboard subscribers")
}

func TestDroppedEvents(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	_ = bus.Subscribe(RecycleBinChanged)
	bus.Publish(RecycleBinChanged, "")
	bus.Publish(RecycleBinChanged, "")
	bus.Publish(RecycleBinChanged, "")

	assert.Equal(t, int64(2), bus.Dropped())
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	ch := bus.Subscribe(FloppyChanged)
	bus.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	bus.Publish(FloppyChanged, "/A:")
	assert.Equal(t, int64(0), bus.Dropped())
}

func TestClose(t *testing.T) {
	bus := NewBus(1)
	ch := bus.SubscribeAll()
	bus.Close()
	bus.Close()

	_, open := <-ch
	require.False(t, open)

	late := bus.Subscribe(CDChanged)
	_, open = <-late
	assert.False(t, open)

	bus.Publish(CDChanged, "/E:")
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(UndoChanged, "") })
	assert.NotPanics(t, func() { Nop{}.Publish(UndoChanged, "") })
}
