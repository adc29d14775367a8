package recycle

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/naming"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

var codec = sonic.ConfigStd

// Manager implements soft delete on top of a reserved directory and a
// JSON sidecar mapping recycle ids to where the item came from.
type Manager struct {
	fs      vfs.FS
	root    string
	events  events.Publisher
	log     *logging.Logger
	metrics *monitoring.Metrics
	now     func() time.Time

	// mu serializes read-modify-write cycles of the metadata file
	mu sync.Mutex
}

// NewManager creates a recycle bin rooted at root (paths.RecycleBin when empty)
func NewManager(fsys vfs.FS, root string, pub events.Publisher, log *logging.Logger) *Manager {
	if root == "" {
		root = paths.RecycleBin
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Manager{
		fs:     fsys,
		root:   paths.Normalize(root),
		events: pub,
		log:    log.Named("recycle"),
		now:    time.Now,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Root returns the recycle bin directory
func (m *Manager) Root() string {
	return m.root
}

// MetadataPath returns the sidecar location
func (m *Manager) MetadataPath() string {
	return paths.Join(m.root, paths.RecycleMetadata)
}

// IsRecycleBinPath reports whether path is the recycle bin itself
func (m *Manager) IsRecycleBinPath(path string) bool {
	return paths.Normalize(path) == m.root
}

// IsRecycledItemPath reports whether path lies inside the bin, excluding
// the bin itself and the metadata file
func (m *Manager) IsRecycledItemPath(path string) bool {
	p := paths.Normalize(path)
	return p != m.root && paths.Within(p, m.root) && p != m.MetadataPath()
}

// Init creates the bin and an empty metadata file if either is missing
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fs.Mkdir(ctx, m.root, true); err != nil {
		return fmt.Errorf("create recycle bin: %w", err)
	}
	exists, err := vfs.Exists(ctx, m.fs, m.MetadataPath())
	if err != nil {
		return err
	}
	if exists {
		meta, err := m.load(ctx)
		if err != nil {
			return err
		}
		m.metrics.SetRecycleItems(len(meta))
		return nil
	}
	return m.save(ctx, Metadata{})
}

// MoveToRecycleBin soft-deletes each path and returns the generated ids in
// order. Items already inside the bin are skipped. Items are processed one
// at a time; on failure the ids recycled so far are still recorded and
// returned alongside the error.
func (m *Manager) MoveToRecycleBin(ctx context.Context, items []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var (
		ids     []string
		moveErr error
	)
	for _, item := range items {
		item = paths.Normalize(item)
		if paths.Within(item, m.root) {
			continue
		}

		rid := id.NewRecycleID().String()
		if err := vfs.MoveRecursive(ctx, m.fs, item, paths.Join(m.root, rid)); err != nil {
			moveErr = fmt.Errorf("recycle %s: %w", item, err)
			break
		}
		meta[rid] = Entry{
			ID:           rid,
			OriginalPath: item,
			OriginalName: paths.Base(item),
			DeletionDate: m.now().UTC(),
		}
		ids = append(ids, rid)
	}

	if len(ids) > 0 {
		if err := m.commit(ctx, meta); err != nil {
			return ids, err
		}
		m.log.Debug("Items recycled", zap.Int("count", len(ids)))
	}
	return ids, moveErr
}

// RestoreItems puts recycled items back where they came from and returns
// the restored paths. Unknown ids are skipped. A missing parent directory is
// recreated; an occupied original path yields a "Copy of" name.
func (m *Manager) RestoreItems(ctx context.Context, ids []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var (
		restored   []string
		restoreErr error
	)
	for _, rid := range ids {
		entry, ok := meta[rid]
		if !ok {
			m.log.Warn("Unknown recycle id", zap.String("id", rid))
			continue
		}

		target, err := m.restoreOne(ctx, entry)
		if err != nil {
			restoreErr = fmt.Errorf("restore %s: %w", entry.OriginalPath, err)
			break
		}
		delete(meta, rid)
		restored = append(restored, target)
	}

	if len(restored) > 0 {
		if err := m.commit(ctx, meta); err != nil {
			return restored, err
		}
	}
	return restored, restoreErr
}

func (m *Manager) restoreOne(ctx context.Context, entry Entry) (string, error) {
	parent := paths.Parent(entry.OriginalPath)
	if err := m.fs.Mkdir(ctx, parent, true); err != nil {
		return "", err
	}
	target, err := naming.CopyTarget(ctx, m.fs, parent, entry.OriginalName)
	if err != nil {
		return "", err
	}
	if err := vfs.MoveRecursive(ctx, m.fs, paths.Join(m.root, entry.ID), target); err != nil {
		return "", err
	}
	return target, nil
}

// Empty permanently removes every recycled payload and resets the metadata.
// Individual removal failures are logged and skipped.
func (m *Manager) Empty(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for rid := range meta {
		if err := m.fs.Remove(ctx, paths.Join(m.root, rid), true); err != nil && !vfs.IsNotExist(err) {
			failed++
			m.log.Error("Failed to remove recycled item",
				zap.String("id", rid),
				zap.String("original_path", meta[rid].OriginalPath),
				zap.Error(err))
		}
	}
	if failed > 0 {
		m.log.Warn("Recycle bin emptied with failures", zap.Int("failed", failed))
	}

	return m.commit(ctx, Metadata{})
}

// StripMetadata drops the entries of recycled items that were permanently
// deleted by path. The id is the item's name directly under the bin.
func (m *Manager) StripMetadata(ctx context.Context, deleted []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for _, p := range deleted {
		p = paths.Normalize(p)
		if !m.IsRecycledItemPath(p) || paths.Parent(p) != m.root {
			continue
		}
		if _, ok := meta[paths.Base(p)]; ok {
			delete(meta, paths.Base(p))
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return m.commit(ctx, meta)
}

// IsEmpty reports whether the metadata holds no entries
func (m *Manager) IsEmpty(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	return len(meta) == 0, nil
}

// Entries lists recycled items, oldest deletion first
func (m *Manager) Entries(ctx context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(meta))
	for _, e := range meta {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DeletionDate.Equal(out[j].DeletionDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].DeletionDate.Before(out[j].DeletionDate)
	})
	return out, nil
}

// Entry looks up a single recycled item
func (m *Manager) Entry(ctx context.Context, rid string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.load(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := meta[rid]
	return e, ok, nil
}

// EntryForPath resolves a path inside the bin to its metadata
func (m *Manager) EntryForPath(ctx context.Context, path string) (Entry, bool, error) {
	p := paths.Normalize(path)
	if !m.IsRecycledItemPath(p) || paths.Parent(p) != m.root {
		return Entry{}, false, nil
	}
	return m.Entry(ctx, paths.Base(p))
}

// load reads the sidecar; a missing file is an empty bin
func (m *Manager) load(ctx context.Context) (Metadata, error) {
	data, err := m.fs.ReadFile(ctx, m.MetadataPath())
	if err != nil {
		if vfs.IsNotExist(err) {
			return Metadata{}, nil
		}
		return nil, fmt.Errorf("read recycle metadata: %w", err)
	}

	meta := Metadata{}
	if len(data) == 0 {
		return meta, nil
	}
	if err := codec.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode recycle metadata: %w", err)
	}
	return meta, nil
}

func (m *Manager) save(ctx context.Context, meta Metadata) error {
	data, err := codec.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recycle metadata: %w", err)
	}
	if err := m.fs.WriteFile(ctx, m.MetadataPath(), data); err != nil {
		return fmt.Errorf("write recycle metadata: %w", err)
	}
	m.metrics.SetRecycleItems(len(meta))
	return nil
}

// commit saves once and notifies once
func (m *Manager) commit(ctx context.Context, meta Metadata) error {
	if err := m.save(ctx, meta); err != nil {
		return err
	}
	m.events.Publish(events.RecycleBinChanged, m.root)
	return nil
}
