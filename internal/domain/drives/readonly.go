package drives

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

// readOnlyFS rejects every mutation with billy.ErrReadOnly. Disc images
// are mounted through it.
type readOnlyFS struct {
	billy.Filesystem
}

// ReadOnly wraps fs so that writes fail
func ReadOnly(fs billy.Filesystem) billy.Filesystem {
	if ro, ok := fs.(*readOnlyFS); ok {
		return ro
	}
	return &readOnlyFS{Filesystem: fs}
}

func (r *readOnlyFS) Create(string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (r *readOnlyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, billy.ErrReadOnly
	}
	return r.Filesystem.OpenFile(filename, flag, perm)
}

func (r *readOnlyFS) Rename(string, string) error {
	return billy.ErrReadOnly
}

func (r *readOnlyFS) Remove(string) error {
	return billy.ErrReadOnly
}

func (r *readOnlyFS) TempFile(string, string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (r *readOnlyFS) MkdirAll(string, os.FileMode) error {
	return billy.ErrReadOnly
}

func (r *readOnlyFS) Symlink(string, string) error {
	return billy.ErrReadOnly
}

func (r *readOnlyFS) Chroot(path string) (billy.Filesystem, error) {
	sub, err := r.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return ReadOnly(sub), nil
}
