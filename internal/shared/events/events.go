package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is used when NewBus receives a non-positive size.
const DefaultBufferSize = 64

// EventType names a change notification.
type EventType string

const (
	ClipboardChanged     EventType = "clipboard_changed"
	UndoChanged          EventType = "undo_changed"
	RecycleBinChanged    EventType = "recycle_bin_changed"
	FloppyChanged        EventType = "floppy_changed"
	CDChanged            EventType = "cd_changed"
	RemovableDiskChanged EventType = "removable_disk_changed"
	MountRequested       EventType = "mount_requested"
	Navigated            EventType = "navigated"
	DirectoryChanged     EventType = "directory_changed"
	AppLaunchRequested   EventType = "app_launch_requested"
)

// Event is a fire-and-forget notification. Listeners re-query state
// rather than trusting the payload.
type Event struct {
	Type EventType `json:"type"`
	Time time.Time `json:"time"`

	// Path is the location the change concerns, when there is one
	Path string `json:"path,omitempty"`
}

// Publisher is the narrow side of Bus handed to managers.
type Publisher interface {
	Publish(eventType EventType, path string)
}

// Bus fans events out to buffered subscriber channels. A full channel
// drops the event rather than blocking the publisher.
type Bus struct {
	subscribers map[EventType][]chan Event
	all         []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
	dropped     atomic.Int64
}

// NewBus creates a bus whose subscriber channels hold bufferSize events.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// Publish broadcasts an event without blocking.
func (b *Bus) Publish(eventType EventType, path string) {
	if b == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event{Type: eventType, Time: time.Now(), Path: path}
	for _, ch := range b.subscribers[eventType] {
		b.send(ch, event)
	}
	for _, ch := range b.all {
		b.send(ch, event)
	}
}

func (b *Bus) send(ch chan Event, event Event) {
	select {
	case ch <- event:
	default:
		b.dropped.Add(1)
	}
}

// Unsubscribe removes and closes a channel returned by Subscribe or
// SubscribeAll.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for eventType, subs := range b.subscribers {
		if i := indexOf(subs, ch); i >= 0 {
			close(subs[i])
			b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
	if i := indexOf(b.all, ch); i >= 0 {
		close(b.all[i])
		b.all = append(b.all[:i], b.all[i+1:]...)
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
}

// Dropped returns how many deliveries were skipped because a subscriber
// channel was full.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

func indexOf(subs []chan Event, ch <-chan Event) int {
	for i, sub := range subs {
		if (<-chan Event)(sub) == ch {
			return i
		}
	}
	return -1
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(EventType, string) {}
