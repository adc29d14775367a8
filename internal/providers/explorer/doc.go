// Package explorer exposes the explorer workspace as a service provider.
//
// Every user-facing operation of the file manager is a tool under the
// "explorer" service id. Tools that act on a window take an optional
// window_id parameter; when it is missing the window from the execution
// context is used, then the focused window, and a new window is opened
// when none exist.
//
// Tool groups:
//   - navigation: navigate, go_up, go_back, go_forward, select_mru, refresh
//   - items: list, open, properties, state
//   - editing: cut, copy, paste, delete, rename, new_folder, new_text_file, undo
//   - inline rename: begin_rename, commit_rename, cancel_rename
//   - recycle bin: restore, empty_recycle_bin
//   - media: insert/eject floppy, cd and removable disks, dismiss_prompt
//   - windows: open_window, close_window, focus_window, windows, set_view
//   - dialogs: messages, set_confirm
//
// Example Usage:
//
//	p := explorer.NewProvider(ws, log)
//	registry.Register(p)
//	res, _ := registry.Execute(ctx, "explorer.navigate",
//	    map[string]interface{}{"path": "C:\\Windows"}, nil)
package explorer
