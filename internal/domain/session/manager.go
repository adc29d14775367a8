package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/id"
)

// DefaultID names the session saved on shutdown and restored on startup
const DefaultID = "default"

const fileExt = ".session"

// ErrNotFound is returned for unknown session ids
var ErrNotFound = errors.New("session not found")

// Workspace is the window surface sessions capture and rebuild
type Workspace interface {
	Windows() []*explorer.Window
	OpenWindow(ctx context.Context, startPath string) (*explorer.Window, error)
	CloseWindow(id string) error
	Focus(id string) error
	Focused() (*explorer.Window, bool)
}

// WindowSnapshot is the saved layout of one window
type WindowSnapshot struct {
	Path     string            `json:"path"`
	ViewMode explorer.ViewMode `json:"view_mode"`
	Focused  bool              `json:"focused,omitempty"`
}

// Session is a saved set of windows
type Session struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Windows     []WindowSnapshot `json:"windows"`
}

// Metadata summarizes a session for listings
type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	WindowCount int       `json:"window_count"`
}

// Stats reports session manager activity
type Stats struct {
	TotalSessions int        `json:"total_sessions"`
	LastSaved     *time.Time `json:"last_saved,omitempty"`
	LastRestored  *time.Time `json:"last_restored,omitempty"`
}

// ToMetadata summarizes s
func (s *Session) ToMetadata() Metadata {
	return Metadata{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		WindowCount: len(s.Windows),
	}
}

// Manager handles session persistence
type Manager struct {
	sessions  sync.Map
	workspace Workspace
	store     billy.Filesystem
	log       *logging.Logger

	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a session manager persisting into store
func NewManager(workspace Workspace, store billy.Filesystem, log *logging.Logger) *Manager {
	return &Manager{
		workspace: workspace,
		store:     store,
		log:       log.Named("session"),
	}
}

// Init loads every session file in the store into the cache. Unreadable
// files are skipped.
func (m *Manager) Init() error {
	files, err := util.Glob(m.store, "*"+fileExt)
	if err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	for _, name := range files {
		sess, err := m.read(strings.TrimSuffix(name, fileExt))
		if err != nil {
			m.log.Warn("Skipping unreadable session", zap.String("file", name), zap.Error(err))
			continue
		}
		m.sessions.Store(sess.ID, sess)
	}
	return nil
}

// Save captures the open windows and writes them to the store
func (m *Manager) Save(ctx context.Context, name, description string) (*Session, error) {
	return m.save(ctx, id.NewSessionID().String(), name, description)
}

// SaveDefault saves the windows under DefaultID, replacing any earlier one
func (m *Manager) SaveDefault(ctx context.Context) (*Session, error) {
	return m.save(ctx, DefaultID, "default", "Auto-saved session")
}

func (m *Manager) save(ctx context.Context, sessionID, name, description string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:          sessionID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		Windows:     m.capture(),
	}

	data, err := sonic.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := util.WriteFile(m.store, sessionID+fileExt, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	m.sessions.Store(sess.ID, sess)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	m.log.Info("Session saved", zap.String("id", sess.ID), zap.Int("windows", len(sess.Windows)))
	return sess, nil
}

// Load returns a session from the cache or the store
func (m *Manager) Load(id string) (*Session, error) {
	if cached, ok := m.sessions.Load(id); ok {
		return cached.(*Session), nil
	}
	sess, err := m.read(id)
	if err != nil {
		return nil, err
	}
	m.sessions.Store(id, sess)
	return sess, nil
}

// Restore closes every window and reopens the saved ones. A saved folder
// that no longer opens falls back the way a new window does.
func (m *Manager) Restore(ctx context.Context, id string) error {
	sess, err := m.Load(id)
	if err != nil {
		return err
	}

	for _, w := range m.workspace.Windows() {
		if err := m.workspace.CloseWindow(w.ID); err != nil && !errors.Is(err, explorer.ErrWindowNotFound) {
			return err
		}
	}

	focusID := ""
	for _, snap := range sess.Windows {
		w, err := m.workspace.OpenWindow(ctx, snap.Path)
		if err != nil {
			return fmt.Errorf("failed to restore window at %s: %w", snap.Path, err)
		}
		if snap.ViewMode.Valid() {
			_ = w.SetViewMode(snap.ViewMode)
		}
		if snap.Focused {
			focusID = w.ID
		}
	}
	if focusID != "" {
		if err := m.workspace.Focus(focusID); err != nil {
			return err
		}
	}

	now := time.Now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	m.log.Info("Session restored", zap.String("id", sess.ID), zap.Int("windows", len(sess.Windows)))
	return nil
}

// List returns all known sessions, newest first
func (m *Manager) List() []Metadata {
	metadata := make([]Metadata, 0)
	m.sessions.Range(func(_, value interface{}) bool {
		metadata = append(metadata, value.(*Session).ToMetadata())
		return true
	})
	sort.Slice(metadata, func(i, j int) bool {
		return metadata[i].CreatedAt.After(metadata[j].CreatedAt)
	})
	return metadata
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	if err := m.store.Remove(id + fileExt); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.sessions.Delete(id)
	return nil
}

// Stats returns session manager statistics
func (m *Manager) Stats() Stats {
	var total int
	m.sessions.Range(func(_, _ interface{}) bool {
		total++
		return true
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		TotalSessions: total,
		LastSaved:     m.lastSaved,
		LastRestored:  m.lastRestored,
	}
}

func (m *Manager) capture() []WindowSnapshot {
	focused, _ := m.workspace.Focused()
	windows := m.workspace.Windows()
	snapshots := make([]WindowSnapshot, len(windows))
	for i, w := range windows {
		snapshots[i] = WindowSnapshot{
			Path:     w.CurrentPath(),
			ViewMode: w.ViewMode(),
			Focused:  focused != nil && focused.ID == w.ID,
		}
	}
	return snapshots
}

func (m *Manager) read(id string) (*Session, error) {
	data, err := util.ReadFile(m.store, id+fileExt)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	if sess.ID == "" {
		return nil, fmt.Errorf("session %s has empty ID field", id)
	}
	return &sess, nil
}
