package recycle

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

func setup(t *testing.T) (*Manager, *vfs.MountFS, *events.Bus) {
	t.Helper()
	ctx := context.Background()

	fsys := vfs.New(nil)
	require.NoError(t, fsys.Mount(paths.SystemDrive, memfs.New()))
	bus := events.NewBus(32)
	t.Cleanup(bus.Close)

	m := NewManager(fsys, "", bus, nil)
	require.NoError(t, m.Init(ctx))
	return m, fsys, bus
}

func write(t *testing.T, fsys vfs.FS, path string) {
	t.Helper()
	require.NoError(t, fsys.WriteFile(context.Background(), path, []byte(path)))
}

func TestInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)

	data, err := fsys.ReadFile(ctx, m.MetadataPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	_, err = m.MoveToRecycleBin(ctx, []string{})
	require.NoError(t, err)
	write(t, fsys, "/C:/a.txt")
	_, err = m.MoveToRecycleBin(ctx, []string{"/C:/a.txt"})
	require.NoError(t, err)

	require.NoError(t, m.Init(ctx))
	empty, err := m.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty, "init must not reset existing metadata")
}

func TestPredicates(t *testing.T) {
	m, _, _ := setup(t)

	assert.True(t, m.IsRecycleBinPath("/C:/Recycled"))
	assert.True(t, m.IsRecycleBinPath("/C:/Recycled/"))
	assert.False(t, m.IsRecycleBinPath("/C:/Recycled/x"))

	assert.True(t, m.IsRecycledItemPath("/C:/Recycled/01ABC"))
	assert.True(t, m.IsRecycledItemPath("/C:/Recycled/01ABC/nested"))
	assert.False(t, m.IsRecycledItemPath("/C:/Recycled"))
	assert.False(t, m.IsRecycledItemPath("/C:/Recycled/.metadata.json"))
	assert.False(t, m.IsRecycledItemPath("/C:/RecycledStuff"))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, fsys, bus := setup(t)
	ch := bus.Subscribe(events.RecycleBinChanged)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/docs/sub", true))
	write(t, fsys, "/C:/docs/sub/note.txt")
	write(t, fsys, "/C:/b.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/docs", "/C:/b.txt"})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Len(t, ch, 1, "one notification per batch")

	exists, err := vfs.Exists(ctx, fsys, "/C:/docs")
	require.NoError(t, err)
	assert.False(t, exists)

	entry, ok, err := m.Entry(ctx, ids[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/C:/docs", entry.OriginalPath)
	assert.Equal(t, "docs", entry.OriginalName)
	assert.False(t, entry.DeletionDate.IsZero())

	restored, err := m.RestoreItems(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"/C:/docs", "/C:/b.txt"}, restored)
	assert.Len(t, ch, 2)

	data, err := fsys.ReadFile(ctx, "/C:/docs/sub/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "/C:/docs/sub/note.txt", string(data))

	empty, err := m.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestMetadataFormat(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	write(t, fsys, "/C:/a.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt"})
	require.NoError(t, err)

	data, err := fsys.ReadFile(ctx, m.MetadataPath())
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, ids[0])
	assert.Equal(t, ids[0], raw[ids[0]]["id"])
	assert.Equal(t, "/C:/a.txt", raw[ids[0]]["originalPath"])
	assert.Equal(t, "a.txt", raw[ids[0]]["originalName"])
	assert.NotEmpty(t, raw[ids[0]]["deletionDate"])
}

func TestMoveSkipsItemsAlreadyRecycled(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	write(t, fsys, "/C:/a.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt"})
	require.NoError(t, err)

	again, err := m.MoveToRecycleBin(ctx, []string{paths.Join(m.Root(), ids[0]), m.Root()})
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMoveFailureKeepsEarlierItems(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	write(t, fsys, "/C:/a.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt", "/C:/missing.txt"})
	require.Error(t, err)
	require.Len(t, ids, 1)

	_, ok, err := m.Entry(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRestoreIntoOccupiedPath(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	write(t, fsys, "/C:/a.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt"})
	require.NoError(t, err)
	write(t, fsys, "/C:/a.txt")

	restored, err := m.RestoreItems(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"/C:/Copy of a.txt"}, restored)
}

func TestRestoreRecreatesParent(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	require.NoError(t, fsys.Mkdir(ctx, "/C:/x/y", true))
	write(t, fsys, "/C:/x/y/z.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/x/y/z.txt"})
	require.NoError(t, err)
	require.NoError(t, fsys.Remove(ctx, "/C:/x", true))

	restored, err := m.RestoreItems(ctx, append([]string{"unknown"}, ids...))
	require.NoError(t, err)
	assert.Equal(t, []string{"/C:/x/y/z.txt"}, restored)
}

func TestEmpty(t *testing.T) {
	ctx := context.Background()
	m, fsys, bus := setup(t)
	write(t, fsys, "/C:/a.txt")
	write(t, fsys, "/C:/b.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt", "/C:/b.txt"})
	require.NoError(t, err)

	// a payload vanishing behind our back is not fatal
	require.NoError(t, fsys.Remove(ctx, paths.Join(m.Root(), ids[0]), true))

	ch := bus.Subscribe(events.RecycleBinChanged)
	require.NoError(t, m.Empty(ctx))
	assert.Len(t, ch, 1)

	names, err := fsys.ReadDir(ctx, m.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{paths.RecycleMetadata}, names)

	entries, err := m.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStripMetadata(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	write(t, fsys, "/C:/a.txt")
	write(t, fsys, "/C:/b.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/C:/a.txt", "/C:/b.txt"})
	require.NoError(t, err)

	require.NoError(t, m.StripMetadata(ctx, []string{paths.Join(m.Root(), ids[0]), "/C:/unrelated"}))

	entries, err := m.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ids[1], entries[0].ID)

	e, ok, err := m.EntryForPath(ctx, paths.Join(m.Root(), ids[1]))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b.txt", e.OriginalName)
}

func TestCrossDeviceRecycle(t *testing.T) {
	ctx := context.Background()
	m, fsys, _ := setup(t)
	require.NoError(t, fsys.Mount("/A:", memfs.New()))
	write(t, fsys, "/A:/floppy.txt")

	ids, err := m.MoveToRecycleBin(ctx, []string{"/A:/floppy.txt"})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	exists, err := vfs.Exists(ctx, fsys, "/A:/floppy.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	restored, err := m.RestoreItems(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"/A:/floppy.txt"}, restored)
}
