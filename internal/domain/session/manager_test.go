package session

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/config"
)

func setup(t *testing.T) (*Manager, *explorer.Workspace) {
	t.Helper()
	ctx := context.Background()
	ws, err := explorer.NewWorkspace(ctx, explorer.Options{
		Explorer: config.Default().Explorer,
		Reserved: config.Default().Drives.Reserved,
	})
	require.NoError(t, err)
	t.Cleanup(ws.Close)

	require.NoError(t, ws.FS().Mkdir(ctx, "/C:/Work", true))
	return NewManager(ws, memfs.New(), nil), ws
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	m, ws := setup(t)

	first, err := ws.OpenWindow(ctx, "/C:/Work")
	require.NoError(t, err)
	require.NoError(t, first.SetViewMode(explorer.ViewDetails))
	_, err = ws.OpenWindow(ctx, "/C:")
	require.NoError(t, err)
	require.NoError(t, ws.Focus(first.ID))

	sess, err := m.Save(ctx, "Work", "two windows")
	require.NoError(t, err)
	assert.Len(t, sess.Windows, 2)
	assert.Contains(t, sess.ID, "sess_")

	// Rearrange, then restore
	for _, w := range ws.Windows() {
		require.NoError(t, ws.CloseWindow(w.ID))
	}
	_, err = ws.OpenWindow(ctx, "")
	require.NoError(t, err)

	require.NoError(t, m.Restore(ctx, sess.ID))

	windows := ws.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, "/C:/Work", windows[0].CurrentPath())
	assert.Equal(t, explorer.ViewDetails, windows[0].ViewMode())
	assert.Equal(t, "/C:", windows[1].CurrentPath())

	focused, ok := ws.Focused()
	require.True(t, ok)
	assert.Equal(t, windows[0].ID, focused.ID)

	stats := m.Stats()
	assert.Equal(t, 1, stats.TotalSessions)
	assert.NotNil(t, stats.LastSaved)
	assert.NotNil(t, stats.LastRestored)
}

func TestRestoreMissingFolderFallsBack(t *testing.T) {
	ctx := context.Background()
	m, ws := setup(t)

	_, err := ws.OpenWindow(ctx, "/C:/Work")
	require.NoError(t, err)
	sess, err := m.Save(ctx, "gone", "")
	require.NoError(t, err)

	require.NoError(t, ws.FS().Remove(ctx, "/C:/Work", true))
	require.NoError(t, m.Restore(ctx, sess.ID))

	windows := ws.Windows()
	require.Len(t, windows, 1)
	assert.NotEqual(t, "/C:/Work", windows[0].CurrentPath())
}

func TestInitLoadsStore(t *testing.T) {
	ctx := context.Background()
	m, ws := setup(t)

	_, err := ws.OpenWindow(ctx, "")
	require.NoError(t, err)
	_, err = m.SaveDefault(ctx)
	require.NoError(t, err)
	_, err = m.SaveDefault(ctx)
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(m.store, "broken.session", []byte("{"), 0o644))

	reloaded := NewManager(ws, m.store, nil)
	require.NoError(t, reloaded.Init())

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, DefaultID, list[0].ID)
	assert.Equal(t, 1, list[0].WindowCount)
}

func TestDeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	m, _ := setup(t)

	sess, err := m.Save(ctx, "empty", "")
	require.NoError(t, err)
	assert.Empty(t, sess.Windows)

	require.NoError(t, m.Delete(sess.ID))
	assert.Empty(t, m.List())

	assert.ErrorIs(t, m.Delete(sess.ID), ErrNotFound)
	_, err = m.Load(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Restore(ctx, "missing"), ErrNotFound)
}
