package explorer

import "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"

var (
	windowParam  = types.Parameter{Name: "window_id", Type: "string", Description: "Target window (defaults to the focused window)", Required: false}
	pathsParam   = types.Parameter{Name: "paths", Type: "array", Description: "Item paths", Required: true}
	sessionParam = types.Parameter{Name: "session_id", Type: "string", Description: "Saved session id", Required: true}
)

func withWindow(params ...types.Parameter) []types.Parameter {
	return append(params, windowParam)
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.navigate",
			Name:        "Navigate",
			Description: "Navigate the window to a folder",
			Parameters: withWindow(
				types.Parameter{Name: "path", Type: "string", Description: "Internal or display path (C:\\Windows, My Computer)", Required: true},
			),
			Returns: "object",
		},
		{ID: "explorer.go_up", Name: "Up One Level", Description: "Navigate to the parent folder", Parameters: withWindow(), Returns: "object"},
		{ID: "explorer.go_back", Name: "Back", Description: "Navigate back in history", Parameters: withWindow(), Returns: "object"},
		{ID: "explorer.go_forward", Name: "Forward", Description: "Navigate forward in history", Parameters: withWindow(), Returns: "object"},
		{
			ID:          "explorer.select_mru",
			Name:        "Select Recent Folder",
			Description: "Navigate to an entry of the address bar recent list",
			Parameters: withWindow(
				types.Parameter{Name: "id", Type: "number", Description: "Recent entry id", Required: true},
			),
			Returns: "object",
		},
		{ID: "explorer.refresh", Name: "Refresh", Description: "Re-read the current folder", Parameters: withWindow(), Returns: "object"},
		{
			ID:          "explorer.list",
			Name:        "List Folder",
			Description: "List the items of the current folder",
			Parameters:  withWindow(),
			Returns:     "object",
		},
		{
			ID:          "explorer.open",
			Name:        "Open",
			Description: "Open an item as a double-click would",
			Parameters: withWindow(
				types.Parameter{Name: "path", Type: "string", Description: "Item path", Required: true},
			),
			Returns: "object",
		},
		{
			ID:          "explorer.properties",
			Name:        "Properties",
			Description: "Show properties of one or more items",
			Parameters:  withWindow(pathsParam),
			Returns:     "object",
		},
		{ID: "explorer.state", Name: "Window State", Description: "Get toolbar, address bar and status state", Parameters: withWindow(), Returns: "object"},
		{ID: "explorer.cut", Name: "Cut", Description: "Put items on the clipboard for moving", Parameters: withWindow(pathsParam), Returns: "object"},
		{ID: "explorer.copy", Name: "Copy", Description: "Put items on the clipboard for copying", Parameters: withWindow(pathsParam), Returns: "object"},
		{
			ID:          "explorer.paste",
			Name:        "Paste",
			Description: "Paste clipboard items into a folder",
			Parameters: withWindow(
				types.Parameter{Name: "destination", Type: "string", Description: "Target folder (defaults to the current folder)", Required: false},
			),
			Returns: "array",
		},
		{
			ID:          "explorer.delete",
			Name:        "Delete",
			Description: "Move items to the Recycle Bin or delete them permanently",
			Parameters: withWindow(
				pathsParam,
				types.Parameter{Name: "permanent", Type: "boolean", Description: "Skip the Recycle Bin", Required: false},
			),
			Returns: "boolean",
		},
		{
			ID:          "explorer.rename",
			Name:        "Rename",
			Description: "Rename an item",
			Parameters: withWindow(
				types.Parameter{Name: "path", Type: "string", Description: "Item path", Required: true},
				types.Parameter{Name: "name", Type: "string", Description: "New name", Required: true},
			),
			Returns: "string",
		},
		{ID: "explorer.new_folder", Name: "New Folder", Description: "Create a new folder in the current folder", Parameters: withWindow(), Returns: "string"},
		{ID: "explorer.new_text_file", Name: "New Text Document", Description: "Create a new text file in the current folder", Parameters: withWindow(), Returns: "string"},
		{ID: "explorer.undo", Name: "Undo", Description: "Undo the last file operation", Parameters: withWindow(), Returns: "boolean"},
		{
			ID:          "explorer.begin_rename",
			Name:        "Begin Rename",
			Description: "Start inline renaming of an item",
			Parameters: withWindow(
				types.Parameter{Name: "path", Type: "string", Description: "Item path", Required: true},
			),
			Returns: "object",
		},
		{
			ID:          "explorer.commit_rename",
			Name:        "Commit Rename",
			Description: "Finish inline renaming with a new name",
			Parameters: withWindow(
				types.Parameter{Name: "name", Type: "string", Description: "New name", Required: true},
			),
			Returns: "string",
		},
		{ID: "explorer.cancel_rename", Name: "Cancel Rename", Description: "Abandon inline renaming", Parameters: withWindow(), Returns: "boolean"},
		{ID: "explorer.restore", Name: "Restore", Description: "Restore recycled items to their original location", Parameters: withWindow(pathsParam), Returns: "array"},
		{ID: "explorer.empty_recycle_bin", Name: "Empty Recycle Bin", Description: "Permanently delete everything in the Recycle Bin", Returns: "boolean"},
		{
			ID:          "explorer.insert_floppy",
			Name:        "Insert Floppy",
			Description: "Insert a floppy disk into drive A:",
			Parameters: []types.Parameter{
				{Name: "label", Type: "string", Description: "Disk label", Required: false},
				{Name: "files", Type: "object", Description: "Files to place on the disk (path: content)", Required: false},
			},
			Returns: "object",
		},
		{ID: "explorer.eject_floppy", Name: "Eject Floppy", Description: "Eject the floppy disk from drive A:", Returns: "boolean"},
		{
			ID:          "explorer.insert_cd",
			Name:        "Insert CD",
			Description: "Insert a CD image into drive E:",
			Parameters: []types.Parameter{
				{Name: "image", Type: "string", Description: "Image file name (label is derived from it)", Required: true},
				{Name: "files", Type: "object", Description: "Files on the disc (path: content)", Required: false},
			},
			Returns: "object",
		},
		{ID: "explorer.eject_cd", Name: "Eject CD", Description: "Eject the CD from drive E:", Returns: "boolean"},
		{
			ID:          "explorer.insert_removable",
			Name:        "Insert Removable Disk",
			Description: "Attach a removable disk on the next free drive letter",
			Parameters: []types.Parameter{
				{Name: "label", Type: "string", Description: "Disk label", Required: false},
				{Name: "files", Type: "object", Description: "Files on the disk (path: content)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.eject_removable",
			Name:        "Eject Removable Disk",
			Description: "Detach a removable disk",
			Parameters: []types.Parameter{
				{Name: "letter", Type: "string", Description: "Drive letter", Required: true},
			},
			Returns: "boolean",
		},
		{ID: "explorer.drives", Name: "Drives", Description: "List drive letters and their media", Returns: "array"},
		{ID: "explorer.dismiss_prompt", Name: "Dismiss Prompt", Description: "Dismiss a pending insert-media prompt", Returns: "boolean"},
		{
			ID:          "explorer.open_window",
			Name:        "Open Window",
			Description: "Open a new explorer window",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Start folder", Required: false},
			},
			Returns: "object",
		},
		{ID: "explorer.close_window", Name: "Close Window", Description: "Close an explorer window", Parameters: withWindow(), Returns: "boolean"},
		{ID: "explorer.focus_window", Name: "Focus Window", Description: "Make a window the focused window", Parameters: withWindow(), Returns: "boolean"},
		{ID: "explorer.windows", Name: "Windows", Description: "List open windows", Returns: "array"},
		{
			ID:          "explorer.set_view",
			Name:        "Set View",
			Description: "Change the window view mode",
			Parameters: withWindow(
				types.Parameter{Name: "mode", Type: "string", Description: "large, small, list or details", Required: true},
			),
			Returns: "boolean",
		},
		{
			ID:          "explorer.messages",
			Name:        "Dialog Messages",
			Description: "Return and clear dialogs shown since the last call",
			Returns:     "array",
		},
		{
			ID:          "explorer.set_confirm",
			Name:        "Set Confirmation Answer",
			Description: "Set the answer given to confirmation dialogs",
			Parameters: []types.Parameter{
				{Name: "answer", Type: "boolean", Description: "Answer for confirm dialogs", Required: true},
			},
			Returns: "boolean",
		},

		// Sessions
		{
			ID:          "explorer.save_session",
			Name:        "Save Session",
			Description: "Save the open windows as a named session",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Session name", Required: true},
				{Name: "description", Type: "string", Description: "Free-text description", Required: false},
			},
			Returns: "object",
		},
		{ID: "explorer.list_sessions", Name: "List Sessions", Description: "List saved sessions", Returns: "array"},
		{
			ID:          "explorer.restore_session",
			Name:        "Restore Session",
			Description: "Close every window and reopen a saved session",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "object",
		},
		{
			ID:          "explorer.delete_session",
			Name:        "Delete Session",
			Description: "Delete a saved session",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "boolean",
		},
	}
}
