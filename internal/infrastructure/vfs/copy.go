package vfs

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// Exists reports whether path resolves. Errors other than "not found"
// are returned so callers do not mistake an I/O failure for a free name.
func Exists(ctx context.Context, fsys FS, path string) (bool, error) {
	_, err := fsys.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CopyRecursive copies src to dst. Directories are recreated and their
// children copied depth first; files are read whole and written whole.
// A failure leaves whatever was already copied in place.
func CopyRecursive(ctx context.Context, fsys FS, src, dst string) error {
	st, err := fsys.Stat(ctx, src)
	if err != nil {
		return err
	}

	if !st.IsDir {
		data, err := fsys.ReadFile(ctx, src)
		if err != nil {
			return err
		}
		return fsys.WriteFile(ctx, dst, data)
	}

	if err := fsys.Mkdir(ctx, dst, true); err != nil {
		return err
	}
	children, err := fsys.ReadDir(ctx, src)
	if err != nil {
		return err
	}
	for _, name := range children {
		if err := CopyRecursive(ctx, fsys, paths.Join(src, name), paths.Join(dst, name)); err != nil {
			return err
		}
	}
	return nil
}

// MoveRecursive renames src to dst, falling back to copy and remove when
// the two paths live on different backends.
func MoveRecursive(ctx context.Context, fsys FS, src, dst string) error {
	err := fsys.Rename(ctx, src, dst)
	if err == nil || !errors.Is(err, ErrCrossDevice) {
		return err
	}
	if err := CopyRecursive(ctx, fsys, src, dst); err != nil {
		return err
	}
	return fsys.Remove(ctx, src, true)
}

// TreeSize walks path and reports total bytes, files and folders beneath it.
// The root itself is not counted as a folder.
func TreeSize(ctx context.Context, fsys FS, path string) (size int64, files, folders int, err error) {
	st, err := fsys.Stat(ctx, path)
	if err != nil {
		return 0, 0, 0, err
	}
	if !st.IsDir {
		return st.Size, 1, 0, nil
	}

	children, err := fsys.ReadDir(ctx, path)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, name := range children {
		child := paths.Join(path, name)
		cst, err := fsys.Stat(ctx, child)
		if err != nil {
			return 0, 0, 0, err
		}
		if !cst.IsDir {
			size += cst.Size
			files++
			continue
		}
		s, f, d, err := TreeSize(ctx, fsys, child)
		if err != nil {
			return 0, 0, 0, err
		}
		size += s
		files += f
		folders += d + 1
	}
	return size, files, folders, nil
}
