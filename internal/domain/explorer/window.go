package explorer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/history"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/listing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/navigation"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// ViewMode is how a window lays out its items
type ViewMode string

const (
	ViewLarge   ViewMode = "large"
	ViewSmall   ViewMode = "small"
	ViewList    ViewMode = "list"
	ViewDetails ViewMode = "details"
)

// Valid reports whether m is a known view mode
func (m ViewMode) Valid() bool {
	switch m {
	case ViewLarge, ViewSmall, ViewList, ViewDetails:
		return true
	}
	return false
}

// ErrWindowNotFound is returned for unknown window ids
var ErrWindowNotFound = fmt.Errorf("window not found")

// Window is one explorer window. It implements fileops.View.
type Window struct {
	ID      string
	Created time.Time

	ws      *Workspace
	history *history.History
	nav     *navigation.Controller
	ops     *fileops.Operations
	log     *logging.Logger

	mu       sync.Mutex
	viewMode ViewMode    // Protected by mu
	rename   renameState // Protected by mu
}

// OpenWindow creates a window at startPath and focuses it. An empty
// startPath uses the configured start folder; a start folder that cannot
// be opened falls back to the root.
func (ws *Workspace) OpenWindow(ctx context.Context, startPath string) (*Window, error) {
	w := &Window{
		ID:       uuid.New().String(),
		Created:  time.Now(),
		ws:       ws,
		history:  history.New(ws.cfg.MRUSize),
		viewMode: ViewLarge,
	}
	w.log = ws.log.With(zap.String("window", w.ID))
	w.nav = navigation.NewController(navigation.Deps{
		Stater:   ws.shell,
		Mounts:   ws.fs,
		Prompter: ws.drives,
		History:  w.history,
		Events:   ws.bus,
		Log:      w.log,
		Metrics:  ws.metrics,
	})
	w.ops = fileops.New(fileops.Deps{
		FS:        ws.fs,
		Shell:     ws.shell,
		Clipboard: ws.clipboard,
		Undo:      ws.undo,
		Recycle:   ws.recycle,
		Dialogs:   ws.dialogs,
		View:      w,
		Log:       w.log,
		Metrics:   ws.metrics,
	})

	if startPath == "" {
		startPath = ws.cfg.StartPath
	}
	err := w.nav.NavigateTo(ctx, startPath)
	if _, ok := w.history.Current(); err != nil || !ok {
		if err := w.nav.NavigateTo(ctx, paths.Root); err != nil {
			return nil, err
		}
	}

	ws.mu.Lock()
	ws.windows[w.ID] = w
	ws.focusedID = w.ID
	ws.mu.Unlock()

	w.log.Info("Window opened", zap.String("path", w.CurrentPath()))
	return w, nil
}

// Window retrieves a window by id
func (ws *Workspace) Window(id string) (*Window, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	w, ok := ws.windows[id]
	return w, ok
}

// Windows lists open windows, oldest first
func (ws *Workspace) Windows() []*Window {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	out := make([]*Window, 0, len(ws.windows))
	for _, w := range ws.windows {
		out = append(out, w)
	}
	sortWindows(out)
	return out
}

// Focus makes id the focused window
func (ws *Workspace) Focus(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if _, ok := ws.windows[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrWindowNotFound)
	}
	ws.focusedID = id
	return nil
}

// Focused returns the focused window
func (ws *Workspace) Focused() (*Window, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	w, ok := ws.windows[ws.focusedID]
	return w, ok
}

// CloseWindow closes a window. Focus moves to the most recently opened
// remaining window.
func (ws *Workspace) CloseWindow(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if _, ok := ws.windows[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrWindowNotFound)
	}
	delete(ws.windows, id)

	if ws.focusedID == id {
		ws.focusedID = ""
		var newest *Window
		for _, w := range ws.windows {
			if newest == nil || w.Created.After(newest.Created) {
				newest = w
			}
		}
		if newest != nil {
			ws.focusedID = newest.ID
		}
	}
	return nil
}

// CurrentPath implements fileops.View
func (w *Window) CurrentPath() string {
	return w.nav.CurrentPath()
}

// Refresh implements fileops.View
func (w *Window) Refresh(ctx context.Context) error {
	return w.nav.Refresh(ctx)
}

// Workspace returns the shared state the window acts on
func (w *Window) Workspace() *Workspace { return w.ws }

// Navigator returns the window's navigation controller
func (w *Window) Navigator() *navigation.Controller { return w.nav }

// Ops returns the file operations bound to this window
func (w *Window) Ops() *fileops.Operations { return w.ops }

// History returns the window's back/forward and MRU state
func (w *Window) History() *history.History { return w.history }

// List renders the current folder
func (w *Window) List(ctx context.Context) (*listing.Listing, error) {
	return w.ws.lister.List(ctx, w.CurrentPath())
}

// ViewMode returns the layout of the window
func (w *Window) ViewMode() ViewMode {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.viewMode
}

// SetViewMode changes the layout of the window
func (w *Window) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown view mode %q", mode)
	}
	w.mu.Lock()
	w.viewMode = mode
	w.mu.Unlock()
	return nil
}

func sortWindows(ws []*Window) {
	sort.Slice(ws, func(i, j int) bool {
		return ws[i].Created.Before(ws[j].Created)
	})
}
