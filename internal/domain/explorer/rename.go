package explorer

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/naming"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// ErrNotRenaming is returned when no inline rename is in progress
var ErrNotRenaming = errors.New("no rename in progress")

// RenameState describes the inline rename editor of a window
type RenameState struct {
	Active bool   `json:"active"`
	Path   string `json:"path,omitempty"`
	Name   string `json:"name,omitempty"`

	// SelectEnd is where the initial selection ends: before the extension
	// for files, the whole name for folders
	SelectEnd int `json:"select_end,omitempty"`

	// Error is the last failed commit, shown inline
	Error string `json:"error,omitempty"`
}

type renameState struct {
	active bool
	path   string
	name   string
	isDir  bool
	err    string
}

// BeginRename implements fileops.View. Root items, the recycle bin, items
// inside it and shell items cannot be renamed; only one rename runs at a
// time.
func (w *Window) BeginRename(path string) bool {
	p := paths.Normalize(path)
	if w.ops.IsProtected(p) || w.ws.recycle.IsRecycledItemPath(p) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.rename.active {
		return false
	}
	isDir := false
	if st, err := w.ws.fs.Stat(context.Background(), p); err == nil {
		isDir = st.IsDir
	}
	w.rename = renameState{active: true, path: p, name: paths.Base(p), isDir: isDir}
	return true
}

// Rename returns the inline rename editor state
func (w *Window) Rename() RenameState {
	w.mu.Lock()
	defer w.mu.Unlock()

	r := w.rename
	state := RenameState{Active: r.active, Path: r.path, Name: r.name, Error: r.err}
	if r.active {
		base, _ := naming.SplitExt(r.name, r.isDir)
		state.SelectEnd = len(base)
	}
	return state
}

// CommitRename finishes the inline rename with newName. An empty or
// unchanged name just closes the editor. A failure keeps the old name,
// records the error for inline display and raises an alert.
func (w *Window) CommitRename(ctx context.Context, newName string) (string, error) {
	w.mu.Lock()
	r := w.rename
	if !r.active {
		w.mu.Unlock()
		return "", ErrNotRenaming
	}
	w.rename = renameState{}
	w.mu.Unlock()

	name := strings.TrimSpace(newName)
	if name == "" || name == r.name {
		return r.path, w.Refresh(ctx)
	}

	newPath, err := w.ops.Rename(ctx, r.path, name)
	if err != nil {
		w.mu.Lock()
		w.rename.err = err.Error()
		w.mu.Unlock()

		dialog.ShowError(w.ws.dialogs, dialog.OpRename, err, r.name)
		w.log.Warn("Rename failed", zap.String("path", r.path), zap.String("name", name), zap.Error(err))
		if rerr := w.Refresh(ctx); rerr != nil {
			w.log.Warn("Refresh failed", zap.Error(rerr))
		}
		return "", err
	}
	return newPath, nil
}

// CancelRename closes the editor without renaming
func (w *Window) CancelRename(ctx context.Context) error {
	w.mu.Lock()
	active := w.rename.active
	w.rename = renameState{}
	w.mu.Unlock()

	if !active {
		return nil
	}
	return w.Refresh(ctx)
}
