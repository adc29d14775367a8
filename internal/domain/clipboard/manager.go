package clipboard

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
)

// Operation says what a paste should do with the clipboard paths
type Operation string

const (
	Cut  Operation = "cut"
	Copy Operation = "copy"
)

// State is a snapshot of the clipboard
type State struct {
	Paths     []string  `json:"paths"`
	Operation Operation `json:"operation,omitempty"`
}

// Manager holds the single active cut or copy operation
type Manager struct {
	mu      sync.RWMutex
	state   State // Protected by mu
	events  events.Publisher
	metrics *monitoring.Metrics
}

// NewManager creates an empty clipboard
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

// Set replaces any prior clipboard contents
func (m *Manager) Set(paths []string, op Operation) {
	m.mu.Lock()
	m.state = State{
		Paths:     append([]string(nil), paths...),
		Operation: op,
	}
	n := len(m.state.Paths)
	m.mu.Unlock()

	m.changed(n)
}

// Get returns a copy of the clipboard
func (m *Manager) Get() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return State{
		Paths:     append([]string(nil), m.state.Paths...),
		Operation: m.state.Operation,
	}
}

// Clear empties the clipboard
func (m *Manager) Clear() {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	m.changed(0)
}

// IsEmpty reports whether there is nothing to paste
func (m *Manager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.state.Paths) == 0
}

// IsCut reports whether path is waiting to be moved, so views can dim it
func (m *Manager) IsCut(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state.Operation != Cut {
		return false
	}
	for _, p := range m.state.Paths {
		if p == path {
			return true
		}
	}
	return false
}

func (m *Manager) changed(count int) {
	m.metrics.SetClipboardItems(count)
	m.events.Publish(events.ClipboardChanged, "")
}
