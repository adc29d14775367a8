package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyRecursive(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/src/nested", true))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/src/a.txt", []byte("aaa")))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/src/nested/b.txt", []byte("bb")))

	require.NoError(t, CopyRecursive(ctx, fsys, "/C:/src", "/C:/dst"))

	data, err := fsys.ReadFile(ctx, "/C:/dst/nested/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "bb", string(data))

	// the source is untouched
	names, err := fsys.ReadDir(ctx, "/C:/src")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "nested"}, names)
}

func TestTreeSize(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFS(t)

	require.NoError(t, fsys.Mkdir(ctx, "/C:/src/nested/deeper", true))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/src/a.txt", []byte("aaa")))
	require.NoError(t, fsys.WriteFile(ctx, "/C:/src/nested/b.txt", []byte("bb")))

	size, files, folders, err := TreeSize(ctx, fsys, "/C:/src")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, 2, files)
	assert.Equal(t, 2, folders)

	size, files, folders, err = TreeSize(ctx, fsys, "/C:/src/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	assert.Equal(t, 1, files)
	assert.Equal(t, 0, folders)
}
