package vfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
)

// Errors reported by filesystem operations. Callers should match them
// with errors.Is since they are wrapped in *fs.PathError.
var (
	ErrNotExist    = fs.ErrNotExist
	ErrExist       = fs.ErrExist
	ErrPermission  = fs.ErrPermission
	ErrNotDir      = errors.New("not a directory")
	ErrIsDir       = errors.New("is a directory")
	ErrNotEmpty    = errors.New("directory not empty")
	ErrCrossDevice = errors.New("cross-device link not permitted")
	ErrInvalid     = errors.New("invalid argument")
	ErrNotMounted  = errors.New("no media in drive")
)

// Stat describes a filesystem entry.
type Stat struct {
	Name      string    `json:"name"`
	IsDir     bool      `json:"is_dir"`
	Size      int64     `json:"size"`
	ATime     time.Time `json:"atime"`
	MTime     time.Time `json:"mtime"`
	BirthTime time.Time `json:"birthtime"`

	// Virtual is set for entries synthesized by a shell extension or a
	// mount point rather than backed by a stored inode.
	Virtual bool `json:"virtual,omitempty"`
}

// IsDirectory reports whether the entry is a directory.
func (s *Stat) IsDirectory() bool {
	return s != nil && s.IsDir
}

// FS is the path-addressed filesystem contract consumed by the file manager.
// All paths are absolute and forward-slash delimited.
type FS interface {
	Stat(ctx context.Context, path string) (*Stat, error)
	ReadDir(ctx context.Context, path string) ([]string, error)
	Rename(ctx context.Context, from, to string) error
	Remove(ctx context.Context, path string, recursive bool) error
	Mkdir(ctx context.Context, path string, recursive bool) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// MountTable reports whether a drive root currently has a backend.
type MountTable interface {
	Has(driveRoot string) bool
}

// NewVirtualStat builds a stat for an entry that has no backing inode.
func NewVirtualStat(name string, isDir bool) *Stat {
	now := time.Now()
	return &Stat{
		Name:      name,
		IsDir:     isDir,
		ATime:     now,
		MTime:     now,
		BirthTime: now,
		Virtual:   true,
	}
}

// IsNotExist reports whether err means the path is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsExist reports whether err means the path is already taken.
func IsExist(err error) bool {
	return errors.Is(err, ErrExist)
}

func pathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: translate(err)}
}

// translate maps backend errors onto the package sentinels.
func translate(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	switch {
	case os.IsNotExist(err):
		return ErrNotExist
	case os.IsExist(err):
		return ErrExist
	case os.IsPermission(err), errors.Is(err, billy.ErrReadOnly):
		return ErrPermission
	}
	return err
}
