package vfs

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *MountFS {
	t.Helper()
	fsys := New(nil)
	require.NoError(t, fsys.Mount("/C:", memfs.New()))
	return fsys
}

func TestMountTable(t *testing.T) {
	fsys := newTestFS(t)

	assert.True(t, fsys.Has("/C:"))
	assert.False(t, fsys.Has("/A:"))

	require.NoError(t, fsys.Mount("/A:", memfs.New()))
	assert.True(t, fsys.Has("/A:"))
	assert.Equal(t, []string{"/A:", "/C:"}, fsys.MountPoints())

	assert.Error(t, fsys.Mount("/A:", memfs.New()), "double mount")
	assert.Error(t, fsys.Mount("/", memfs.New()), "root mount")

	require.NoError(t, fsys.Unmount("/A:"))
	assert.False(t, fsys.Has("/A:"))
	assert.Error(t, fsys.Unmount("/A:"))
}

func TestStatAndReadDir(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	root, err := fsys.Stat(ctx, "/")
	require.NoError(t, err)
	assert.True(t, root.IsDir)

	names, err := fsys.ReadDir(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"C:"}, names)

	names, err = fsys.ReadDir(ctx, "/C:")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/Windows", false))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/readme.txt", []byte("hello")))

	names, err = fsys.ReadDir(ctx, "/C:")
	require.NoError(t, err)
	assert.Equal(t, []string{"Windows", "readme.txt"}, names)

	st, err := fsys.Stat(ctx, "/C:/readme.txt")
	require.NoError(t, err)
	assert.False(t, st.IsDir)
	assert.Equal(t, int64(5), st.Size)
	assert.Equal(t, "readme.txt", st.Name)

	_, err = fsys.Stat(ctx, "/C:/missing")
	assert.True(t, IsNotExist(err))

	_, err = fsys.ReadDir(ctx, "/C:/readme.txt")
	assert.True(t, errors.Is(err, ErrNotDir))
}

func TestReadDirMergesPlaceholders(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	require.NoError(t, fsys.Mkdir(ctx, "/A:", false))
	require.NoError(t, fsys.Mount("/A:", memfs.New()))

	names, err := fsys.ReadDir(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"A:", "C:"}, names)
}

func TestUnmountedDriveRefusesAccess(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)
	require.NoError(t, fsys.Mkdir(ctx, "/A:", false))

	require.NoError(t, fsys.Mount("/A:", memfs.New()))
	require.NoError(t, fsys.WriteFile(ctx, "/A:/notes.txt", []byte("x")))
	require.NoError(t, fsys.Unmount("/A:"))

	_, err := fsys.Stat(ctx, "/A:/notes.txt")
	assert.ErrorIs(t, err, ErrNotMounted)
	assert.False(t, IsNotExist(err))
	_, err = fsys.ReadDir(ctx, "/A:/sub")
	assert.ErrorIs(t, err, ErrNotMounted)
	assert.ErrorIs(t, fsys.Mkdir(ctx, "/A:/New Folder", false), ErrNotMounted)
	assert.ErrorIs(t, fsys.Mkdir(ctx, "/A:/x/y", true), ErrNotMounted)
	assert.ErrorIs(t, fsys.WriteFile(ctx, "/A:/copy.txt", []byte("y")), ErrNotMounted)
	assert.ErrorIs(t, fsys.Remove(ctx, "/A:/notes.txt", true), ErrNotMounted)

	require.NoError(t, fsys.WriteFile(ctx, "/C:/a.txt", []byte("a")))
	assert.ErrorIs(t, fsys.Rename(ctx, "/C:/a.txt", "/A:/a.txt"), ErrNotMounted)
	assert.ErrorIs(t, fsys.Rename(ctx, "/A:/notes.txt", "/C:/notes.txt"), ErrNotMounted)

	// the empty drive itself is still listed and browsable
	names, err := fsys.ReadDir(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"A:", "C:"}, names)
	names, err = fsys.ReadDir(ctx, "/A:")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMkdir(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	err := fsys.Mkdir(ctx, "/C:/a/b", false)
	assert.True(t, IsNotExist(err), "parent must exist")

	require.NoError(t, fsys.Mkdir(ctx, "/C:/a/b", true))
	require.NoError(t, fsys.Mkdir(ctx, "/C:/a/b", true), "recursive mkdir is idempotent")

	err = fsys.Mkdir(ctx, "/C:/a", false)
	assert.True(t, IsExist(err))
}

func TestWriteAndReadFile(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	err := fsys.WriteFile(ctx, "/C:/nowhere/x.txt", []byte("x"))
	assert.True(t, IsNotExist(err))

	require.NoError(t, fsys.WriteFile(ctx, "/C:/x.txt", []byte("one")))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/x.txt", []byte("two")))

	data, err := fsys.ReadFile(ctx, "/C:/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	_, err = fsys.ReadFile(ctx, "/C:")
	assert.True(t, errors.Is(err, ErrIsDir))
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/X", false))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/X/file.txt", []byte("data")))
	require.NoError(t, fsys.Mkdir(ctx, "/C:/X (1)", false))

	require.NoError(t, fsys.Rename(ctx, "/C:/X", "/C:/Y"))

	names, err := fsys.ReadDir(ctx, "/C:")
	require.NoError(t, err)
	assert.Equal(t, []string{"X (1)", "Y"}, names, "siblings sharing a prefix stay put")

	data, err := fsys.ReadFile(ctx, "/C:/Y/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	err = fsys.Rename(ctx, "/C:/Y", "/C:/X (1)")
	assert.True(t, IsExist(err))

	err = fsys.Rename(ctx, "/C:/Y", "/C:/Y/inner")
	assert.True(t, errors.Is(err, ErrInvalid))

	err = fsys.Rename(ctx, "/C:", "/D:")
	assert.True(t, errors.Is(err, ErrPermission))
}

func TestRenameAcrossMounts(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)
	require.NoError(t, fsys.Mount("/A:", memfs.New()))
	require.NoError(t, fsys.WriteFile(ctx, "/A:/disk.txt", []byte("floppy")))

	err := fsys.Rename(ctx, "/A:/disk.txt", "/C:/disk.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCrossDevice))

	var linkErr *os.LinkError
	assert.True(t, errors.As(err, &linkErr))

	require.NoError(t, MoveRecursive(ctx, fsys, "/A:/disk.txt", "/C:/disk.txt"))

	ok, err := Exists(ctx, fsys, "/A:/disk.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := fsys.ReadFile(ctx, "/C:/disk.txt")
	require.NoError(t, err)
	assert.Equal(t, "floppy", string(data))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/dir/sub", true))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/dir/sub/f.txt", []byte("f")))

	err := fsys.Remove(ctx, "/C:/dir", false)
	assert.True(t, errors.Is(err, ErrNotEmpty))

	require.NoError(t, fsys.Remove(ctx, "/C:/dir", true))
	ok, err := Exists(ctx, fsys, "/C:/dir")
	require.NoError(t, err)
	assert.False(t, ok)

	err = fsys.Remove(ctx, "/C:/dir", true)
	assert.True(t, IsNotExist(err))

	err = fsys.Remove(ctx, "/C:", true)
	assert.True(t, errors.Is(err, ErrPermission))
}

func TestCanceledContext(t *testing.T) {
	fsys := newTestFS(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fsys.Stat(ctx, "/C:")
	assert.ErrorIs(t, err, context.Canceled)
}
