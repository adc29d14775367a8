package shell

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// Default column sets
var (
	RootColumns = []Column{
		{Label: "Name", Key: ColName},
		{Label: "Type", Key: ColType},
	}
	DefaultColumns = []Column{
		{Label: "Name", Key: ColName},
		{Label: "Size", Key: ColSize},
		{Label: "Type", Key: ColType},
		{Label: "Modified", Key: ColModified},
	}
)

// Type names reported for items directly under the root
const (
	TypeDisk         = "Disk"
	TypeSystemFolder = "System Folder"
)

type registration struct {
	ext  Extension
	caps Capability
}

// Registry dispatches path operations to the first extension claiming the
// path, falling through to the real filesystem otherwise. Directory
// listings are the exception: every extension may add entries.
type Registry struct {
	fs vfs.FS

	mu   sync.RWMutex
	exts []registration
}

// NewRegistry creates a registry over the real filesystem
func NewRegistry(fsys vfs.FS) *Registry {
	return &Registry{fs: fsys}
}

// Register appends ext with its declared capabilities. Registering the
// same extension twice is a no-op.
func (r *Registry) Register(ext Extension, caps Capability) error {
	if err := verify(ext, caps); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.exts {
		if reg.ext == ext {
			return nil
		}
	}
	r.exts = append(r.exts, registration{ext: ext, caps: caps})
	return nil
}

// Extensions lists registered extensions in priority order
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Extension, len(r.exts))
	for i, reg := range r.exts {
		out[i] = reg.ext
	}
	return out
}

// ExtensionFor returns the first extension claiming path
func (r *Registry) ExtensionFor(path string) (Extension, Capability, bool) {
	if path == "" {
		return nil, 0, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.exts {
		if reg.ext.HandlesPath(path) {
			return reg.ext, reg.caps, true
		}
	}
	return nil, 0, false
}

// IsVirtual reports whether an extension owns path
func (r *Registry) IsVirtual(path string) bool {
	_, _, ok := r.ExtensionFor(path)
	return ok
}

// Stat describes path through its extension or the real filesystem
func (r *Registry) Stat(ctx context.Context, path string) (*vfs.Stat, error) {
	if ext, _, ok := r.ExtensionFor(path); ok {
		return ext.Stat(ctx, path)
	}
	return r.fs.Stat(ctx, path)
}

// ReadDir lists dir as the union of real entries and every extension's
// virtual entries, without duplicates. A real listing error is returned
// only when no extension contributed anything.
func (r *Registry) ReadDir(ctx context.Context, dir string) ([]string, error) {
	names, realErr := r.fs.ReadDir(ctx, dir)

	r.mu.RLock()
	exts := make([]registration, len(r.exts))
	copy(exts, r.exts)
	r.mu.RUnlock()

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; !dup {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	contributed := false
	for _, reg := range exts {
		virtual, ok := reg.ext.ReadDir(ctx, dir)
		if !ok {
			continue
		}
		contributed = true
		for _, n := range virtual {
			if _, dup := seen[n]; !dup {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}

	if realErr != nil && !contributed {
		return nil, realErr
	}
	return out, nil
}

// Icon returns the icon id an extension assigns to path
func (r *Registry) Icon(path string) (string, bool) {
	ext, caps, ok := r.ExtensionFor(path)
	if !ok || !caps.Has(CapIcon) {
		return "", false
	}
	return ext.(IconProvider).Icon(path)
}

// Columns returns the detail-view columns for dir
func (r *Registry) Columns(dir string) []Column {
	if dir == paths.Root {
		return cloneColumns(RootColumns)
	}
	if ext, caps, ok := r.ExtensionFor(dir); ok && caps.Has(CapColumns) {
		if cols := ext.(ColumnProvider).Columns(dir); len(cols) > 0 {
			return cloneColumns(cols)
		}
	}
	return cloneColumns(DefaultColumns)
}

// ColumnValue returns an override for one cell. The owning extension is
// asked first; root items then get their stock type names. ok is false
// when the caller should compute the value itself.
func (r *Registry) ColumnValue(path, key string, st *vfs.Stat) (string, bool) {
	ext, caps, claimed := r.ExtensionFor(path)
	if claimed && caps.Has(CapColumns) {
		if v, ok := ext.(ColumnProvider).ColumnValue(path, key, st); ok {
			return v, true
		}
	}

	if paths.Parent(path) == paths.Root && key == ColType {
		if paths.IsDriveRoot(path) {
			return TypeDisk, true
		}
		if claimed {
			return TypeSystemFolder, true
		}
	}
	return "", false
}

// Open lets the owning extension handle opening path
func (r *Registry) Open(ctx context.Context, path string, nav Navigator) (bool, error) {
	ext, caps, ok := r.ExtensionFor(path)
	if !ok || !caps.Has(CapOpen) {
		return false, nil
	}
	return ext.(Opener).Open(ctx, path, nav)
}

func cloneColumns(cols []Column) []Column {
	return append([]Column(nil), cols...)
}
