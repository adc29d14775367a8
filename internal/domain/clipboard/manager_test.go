package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
)

func TestSetReplacesState(t *testing.T) {
	m := NewManager(nil)
	assert.True(t, m.IsEmpty())

	m.Set([]string{"/C:/a.txt", "/C:/b.txt"}, Copy)
	m.Set([]string{"/C:/c.txt"}, Cut)

	state := m.Get()
	assert.Equal(t, []string{"/C:/c.txt"}, state.Paths)
	assert.Equal(t, Cut, state.Operation)
	assert.False(t, m.IsEmpty())
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewManager(nil)
	paths := []string{"/C:/a.txt"}
	m.Set(paths, Copy)

	paths[0] = "/C:/changed"
	state := m.Get()
	state.Paths[0] = "/C:/mutated"

	assert.Equal(t, []string{"/C:/a.txt"}, m.Get().Paths)
}

func TestIsCut(t *testing.T) {
	m := NewManager(nil)

	m.Set([]string{"/C:/a.txt"}, Copy)
	assert.False(t, m.IsCut("/C:/a.txt"))

	m.Set([]string{"/C:/a.txt"}, Cut)
	assert.True(t, m.IsCut("/C:/a.txt"))
	assert.False(t, m.IsCut("/C:/b.txt"))

	m.Clear()
	assert.False(t, m.IsCut("/C:/a.txt"))
	assert.True(t, m.IsEmpty())
}

func TestEveryMutationNotifies(t *testing.T) {
	bus := events.NewBus(8)
	defer bus.Close()
	ch := bus.Subscribe(events.ClipboardChanged)

	m := NewManager(bus)
	m.Set([]string{"/C:/a.txt"}, Copy)
	m.Clear()
	_ = m.Get()
	_ = m.IsEmpty()

	require.Len(t, ch, 2)
}
