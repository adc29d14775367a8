package explorer

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/drives"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/history"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// State is a snapshot of everything a window's chrome displays: title,
// address bar, toolbar enablement, MRU drop-down and pending prompts
type State struct {
	WindowID string   `json:"window_id"`
	Path     string   `json:"path"`
	Address  string   `json:"address"`
	Title    string   `json:"title"`
	ViewMode ViewMode `json:"view_mode"`

	CanGoBack    bool     `json:"can_go_back"`
	CanGoForward bool     `json:"can_go_forward"`
	CanGoUp      bool     `json:"can_go_up"`
	History      []string `json:"history"`
	HistoryIndex int      `json:"history_index"`

	MRU         []history.MRUEntry `json:"mru"`
	SelectedMRU int                `json:"selected_mru,omitempty"`

	CanUndo   bool            `json:"can_undo"`
	UndoLabel string          `json:"undo_label"`
	Clipboard clipboard.State `json:"clipboard"`
	CanPaste  bool            `json:"can_paste"`

	RecycleBinEmpty bool           `json:"recycle_bin_empty"`
	Drives          []drives.Drive `json:"drives"`
	MountPrompt     *drives.Prompt `json:"mount_prompt,omitempty"`
	Rename          RenameState    `json:"rename"`
}

// State snapshots the window and the shared managers it shows
func (w *Window) State(ctx context.Context) (*State, error) {
	current := w.CurrentPath()
	entries, index := w.history.Entries()

	empty, err := w.ws.recycle.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}

	s := &State{
		WindowID:        w.ID,
		Path:            current,
		Address:         paths.FormatForDisplay(current),
		Title:           paths.DisplayName(current, w.ws.drives),
		ViewMode:        w.ViewMode(),
		CanGoBack:       w.history.CanGoBack(),
		CanGoForward:    w.history.CanGoForward(),
		CanGoUp:         current != paths.Root,
		History:         entries,
		HistoryIndex:    index,
		MRU:             w.history.MRU(),
		CanUndo:         w.ws.undo.CanUndo(),
		UndoLabel:       w.ws.undo.Label(),
		Clipboard:       w.ws.clipboard.Get(),
		RecycleBinEmpty: empty,
		Drives:          w.ws.drives.Drives(),
		Rename:          w.Rename(),
	}
	s.CanPaste = !w.ws.clipboard.IsEmpty() && current != paths.Root && !w.ws.shell.IsVirtual(current)
	if id, ok := w.history.SelectedMRUID(); ok {
		s.SelectedMRU = id
	}
	if p, ok := w.ws.drives.PendingPrompt(); ok {
		s.MountPrompt = &p
	}
	return s, nil
}
