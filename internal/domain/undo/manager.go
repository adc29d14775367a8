package undo

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
)

// Manager is a LIFO stack of undo entries. It does not invert anything
// itself; callers Peek, attempt the inversion and Pop only on success.
type Manager struct {
	mu      sync.Mutex
	stack   []Entry // Protected by mu
	events  events.Publisher
	metrics *monitoring.Metrics
}

// NewManager creates an empty undo stack
func NewManager(pub events.Publisher) *Manager {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Manager{events: pub}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Push adds entry to the top of the stack
func (m *Manager) Push(entry Entry) {
	if entry == nil {
		return
	}

	m.mu.Lock()
	m.stack = append(m.stack, entry)
	depth := len(m.stack)
	m.mu.Unlock()

	m.changed(depth)
}

// Pop removes and returns the top entry, or nil when empty
func (m *Manager) Pop() Entry {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return nil
	}
	top := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	depth := len(m.stack)
	m.mu.Unlock()

	m.changed(depth)
	return top
}

// Peek returns the top entry without removing it, or nil when empty
func (m *Manager) Peek() Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// CanUndo reports whether the stack holds anything
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.stack) > 0
}

// Len returns the stack depth
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.stack)
}

// Clear drops every entry
func (m *Manager) Clear() {
	m.mu.Lock()
	m.stack = nil
	m.mu.Unlock()

	m.changed(0)
}

// Label returns the menu text for the top entry
func (m *Manager) Label() string {
	return Label(m.Peek())
}

func (m *Manager) changed(depth int) {
	m.metrics.SetUndoDepth(depth)
	m.events.Publish(events.UndoChanged, "")
}
