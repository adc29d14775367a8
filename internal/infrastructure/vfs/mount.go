package vfs

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// MountFS composes billy filesystems into one tree. The root filesystem
// serves "/" and every mount point serves the subtree beneath it.
type MountFS struct {
	root   billy.Filesystem
	mounts map[string]billy.Filesystem
	native map[billy.Filesystem]bool
	mu     sync.RWMutex
}

// Option configures a mount.
type Option func(*mountConfig)

type mountConfig struct {
	nativeRename bool
}

// WithNativeRename lets the backend rename entries itself. Backends without
// it move trees entry by entry, which memfs needs because its Rename also
// relocates siblings that share the source name as a prefix.
func WithNativeRename() Option {
	return func(c *mountConfig) {
		c.nativeRename = true
	}
}

// New creates a mount tree over root. A nil root gets an in-memory backend.
func New(root billy.Filesystem) *MountFS {
	if root == nil {
		root = memfs.New()
	}
	return &MountFS{
		root:   root,
		mounts: make(map[string]billy.Filesystem),
		native: make(map[billy.Filesystem]bool),
	}
}

// Mount binds a backend at point, e.g. "/C:".
func (m *MountFS) Mount(point string, backend billy.Filesystem, opts ...Option) error {
	point = paths.Normalize(point)
	if point == paths.Root {
		return fmt.Errorf("cannot mount over %s", paths.Root)
	}
	if backend == nil {
		return fmt.Errorf("mount %s: nil backend", point)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.mounts[point]; exists {
		return fmt.Errorf("mount %s: already mounted", point)
	}
	var cfg mountConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	m.mounts[point] = backend
	m.native[backend] = cfg.nativeRename
	return nil
}

// Unmount detaches the backend at point.
func (m *MountFS) Unmount(point string) error {
	point = paths.Normalize(point)

	m.mu.Lock()
	defer m.mu.Unlock()

	backend, exists := m.mounts[point]
	if !exists {
		return fmt.Errorf("unmount %s: not mounted", point)
	}
	delete(m.mounts, point)
	delete(m.native, backend)
	return nil
}

// Has reports whether a backend is mounted at point.
func (m *MountFS) Has(point string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.mounts[paths.Normalize(point)]
	return ok
}

// MountPoints returns the mounted points in lexical order.
func (m *MountFS) MountPoints() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	points := make([]string, 0, len(m.mounts))
	for p := range m.mounts {
		points = append(points, p)
	}
	sort.Strings(points)
	return points
}

// Backend returns the filesystem mounted at point.
func (m *MountFS) Backend(point string) (billy.Filesystem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.mounts[paths.Normalize(point)]
	return b, ok
}

// resolve finds the backend owning path and the path relative to it.
func (m *MountFS) resolve(path string) (backend billy.Filesystem, point, rel string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	backend, point = m.root, paths.Root
	for p, b := range m.mounts {
		if paths.Within(path, p) && len(p) > len(point) {
			backend, point = b, p
		}
	}

	if point == paths.Root {
		return backend, point, path
	}
	rel = strings.TrimPrefix(path, point)
	if rel == "" {
		rel = paths.Root
	}
	return backend, point, rel
}

// childMounts lists the names of mount points directly beneath dir.
func (m *MountFS) childMounts(dir string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for p := range m.mounts {
		if paths.Parent(p) == dir {
			names = append(names, paths.Base(p))
		}
	}
	return names
}

// unmounted reports whether path lies below a drive letter that has no
// backend. The bare drive root still resolves to its placeholder directory.
func (m *MountFS) unmounted(path string) bool {
	root := paths.DriveRoot(path)
	if root == "" || paths.IsDriveRoot(path) {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.mounts[root]
	return !ok
}

func (m *MountFS) isMountPoint(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.mounts[path]
	return ok
}

// Stat implements FS.
func (m *MountFS) Stat(ctx context.Context, path string) (*Stat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = paths.Normalize(path)
	if m.unmounted(path) {
		return nil, pathError("stat", path, ErrNotMounted)
	}

	backend, _, rel := m.resolve(path)
	if rel == paths.Root {
		st := NewVirtualStat(paths.Base(path), true)
		st.Virtual = false
		return st, nil
	}

	info, err := backend.Stat(rel)
	if err != nil {
		return nil, pathError("stat", path, err)
	}
	return fromFileInfo(info), nil
}

// ReadDir implements FS. Mount points directly beneath path are listed
// alongside the backend's own entries.
func (m *MountFS) ReadDir(ctx context.Context, path string) ([]string, error) {
	st, err := m.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	path = paths.Normalize(path)
	if !st.IsDir {
		return nil, pathError("readdir", path, ErrNotDir)
	}

	backend, _, rel := m.resolve(path)
	infos, err := backend.ReadDir(rel)
	if err != nil {
		// an empty backend has no materialized root
		if rel != paths.Root || !os.IsNotExist(err) {
			return nil, pathError("readdir", path, err)
		}
	}

	seen := make(map[string]struct{}, len(infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if _, dup := seen[info.Name()]; dup {
			continue
		}
		seen[info.Name()] = struct{}{}
		names = append(names, info.Name())
	}
	for _, name := range m.childMounts(path) {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Rename implements FS. Moving between two backends fails with
// ErrCrossDevice so callers can fall back to copy and remove.
func (m *MountFS) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from, to = paths.Normalize(from), paths.Normalize(to)

	if m.unmounted(from) || m.unmounted(to) {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrNotMounted}
	}
	if m.isMountPoint(from) || m.isMountPoint(to) || from == paths.Root {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrPermission}
	}
	if from == to || paths.Within(to, from) {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrInvalid}
	}

	srcFS, _, srcRel := m.resolve(from)
	dstFS, _, dstRel := m.resolve(to)
	if srcFS != dstFS {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrCrossDevice}
	}

	if _, err := m.Stat(ctx, from); err != nil {
		return err
	}
	if err := m.requireDir(ctx, "rename", paths.Parent(to)); err != nil {
		return err
	}
	if _, err := m.Stat(ctx, to); err == nil {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: ErrExist}
	}

	var err error
	if m.nativeRename(srcFS) {
		err = srcFS.Rename(srcRel, dstRel)
	} else {
		err = moveTree(srcFS, srcRel, dstRel)
	}
	if err != nil {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: translate(err)}
	}
	return nil
}

func (m *MountFS) nativeRename(backend billy.Filesystem) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.native[backend]
}

// moveTree relocates from to to inside a single backend.
func moveTree(backend billy.Filesystem, from, to string) error {
	info, err := backend.Stat(from)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		data, err := util.ReadFile(backend, from)
		if err != nil {
			return err
		}
		if err := util.WriteFile(backend, to, data, filePerm); err != nil {
			return err
		}
		return backend.Remove(from)
	}

	if err := backend.MkdirAll(to, dirPerm); err != nil {
		return err
	}
	children, err := backend.ReadDir(from)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := moveTree(backend, paths.Join(from, child.Name()), paths.Join(to, child.Name())); err != nil {
			return err
		}
	}
	return backend.Remove(from)
}

// Remove implements FS. A non-recursive remove of a populated directory
// fails with ErrNotEmpty.
func (m *MountFS) Remove(ctx context.Context, path string, recursive bool) error {
	path = paths.Normalize(path)
	if path == paths.Root || m.isMountPoint(path) {
		return pathError("remove", path, ErrPermission)
	}
	if m.unmounted(path) {
		return pathError("remove", path, ErrNotMounted)
	}

	st, err := m.Stat(ctx, path)
	if err != nil {
		return err
	}

	backend, _, rel := m.resolve(path)
	if st.IsDir && !recursive {
		children, err := m.ReadDir(ctx, path)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return pathError("remove", path, ErrNotEmpty)
		}
	}

	if st.IsDir {
		err = util.RemoveAll(backend, rel)
	} else {
		err = backend.Remove(rel)
	}
	if err != nil {
		return pathError("remove", path, err)
	}
	return nil
}

// Mkdir implements FS. A recursive mkdir of an existing directory succeeds.
func (m *MountFS) Mkdir(ctx context.Context, path string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = paths.Normalize(path)
	if m.unmounted(path) {
		return pathError("mkdir", path, ErrNotMounted)
	}

	if st, err := m.Stat(ctx, path); err == nil {
		if recursive && st.IsDir {
			return nil
		}
		return pathError("mkdir", path, ErrExist)
	}

	if !recursive {
		if err := m.requireDir(ctx, "mkdir", paths.Parent(path)); err != nil {
			return err
		}
	}

	backend, _, rel := m.resolve(path)
	if err := backend.MkdirAll(rel, dirPerm); err != nil {
		return pathError("mkdir", path, err)
	}
	return nil
}

// ReadFile implements FS.
func (m *MountFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	st, err := m.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	path = paths.Normalize(path)
	if st.IsDir {
		return nil, pathError("read", path, ErrIsDir)
	}

	backend, _, rel := m.resolve(path)
	data, err := util.ReadFile(backend, rel)
	if err != nil {
		return nil, pathError("read", path, err)
	}
	return data, nil
}

// WriteFile implements FS. The parent directory must already exist.
func (m *MountFS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = paths.Normalize(path)
	if m.unmounted(path) {
		return pathError("write", path, ErrNotMounted)
	}

	if st, err := m.Stat(ctx, path); err == nil && st.IsDir {
		return pathError("write", path, ErrIsDir)
	}
	if err := m.requireDir(ctx, "write", paths.Parent(path)); err != nil {
		return err
	}

	backend, _, rel := m.resolve(path)
	if err := util.WriteFile(backend, rel, data, filePerm); err != nil {
		return pathError("write", path, err)
	}
	return nil
}

func (m *MountFS) requireDir(ctx context.Context, op, dir string) error {
	st, err := m.Stat(ctx, dir)
	if err != nil {
		return pathError(op, dir, ErrNotExist)
	}
	if !st.IsDir {
		return pathError(op, dir, ErrNotDir)
	}
	return nil
}

func fromFileInfo(info os.FileInfo) *Stat {
	mtime := info.ModTime()
	return &Stat{
		Name:      info.Name(),
		IsDir:     info.IsDir(),
		Size:      info.Size(),
		ATime:     mtime,
		MTime:     mtime,
		BirthTime: mtime,
	}
}
