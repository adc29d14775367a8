// Package fileops orchestrates the user-facing file operations: clipboard
// paste, delete, rename, new items and undo. It drives the filesystem and
// records reversible state in the undo stack.
package fileops

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/clipboard"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/naming"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/undo"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// ConfirmDeleteTitle is the title of the delete confirmation
const ConfirmDeleteTitle = "Confirm File Delete"

// View is the explorer window the operations act on behalf of
type View interface {
	// CurrentPath is the folder new items are created in
	CurrentPath() string

	// Refresh re-reads the current folder
	Refresh(ctx context.Context) error

	// BeginRename puts path into inline-rename mode
	BeginRename(path string) bool
}

// Deps wires Operations to the managers of one explorer session
type Deps struct {
	FS        vfs.FS
	Shell     *shell.Registry
	Clipboard *clipboard.Manager
	Undo      *undo.Manager
	Recycle   *recycle.Manager
	Dialogs   dialog.Dialogs
	View      View
	Log       *logging.Logger
	Metrics   *monitoring.Metrics
}

// Operations implements paste, delete, rename, create and undo
type Operations struct {
	fs        vfs.FS
	shell     *shell.Registry
	clipboard *clipboard.Manager
	undo      *undo.Manager
	recycle   *recycle.Manager
	dialogs   dialog.Dialogs
	view      View
	log       *logging.Logger
	metrics   *monitoring.Metrics
}

// New creates Operations from d. Dialogs defaults to a recorder that
// confirms everything.
func New(d Deps) *Operations {
	if d.Dialogs == nil {
		d.Dialogs = dialog.NewRecorder(true)
	}
	return &Operations{
		fs:        d.FS,
		shell:     d.Shell,
		clipboard: d.Clipboard,
		undo:      d.Undo,
		recycle:   d.Recycle,
		dialogs:   d.Dialogs,
		view:      d.View,
		log:       d.Log.Named("fileops"),
		metrics:   d.Metrics,
	}
}

// Cut puts paths on the clipboard for moving. Protected items and items
// inside the recycle bin are dropped; recycled items leave the bin only
// through restore.
func (o *Operations) Cut(items []string) {
	if items = o.clipboardable(items); len(items) > 0 {
		o.clipboard.Set(items, clipboard.Cut)
	}
}

// Copy puts paths on the clipboard for copying. Protected items and items
// inside the recycle bin are dropped.
func (o *Operations) Copy(items []string) {
	if items = o.clipboardable(items); len(items) > 0 {
		o.clipboard.Set(items, clipboard.Copy)
	}
}

func (o *Operations) clipboardable(items []string) []string {
	items = o.unprotected(items)
	out := items[:0]
	for _, p := range items {
		if o.recycle != nil && o.recycle.IsRecycledItemPath(p) {
			o.log.Debug("Skipping recycled item", zap.String("path", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsProtected reports whether path may not be renamed, deleted or moved:
// the root, anything directly under it, the recycle bin itself and every
// shell-extension item
func (o *Operations) IsProtected(path string) bool {
	p := paths.Normalize(path)
	if p == paths.Root || paths.IsRootItem(p) {
		return true
	}
	if o.recycle != nil && o.recycle.IsRecycleBinPath(p) {
		return true
	}
	return o.shell != nil && o.shell.IsVirtual(p)
}

// PasteTarget returns the collision-free path name would take in dir for
// the given clipboard operation
func (o *Operations) PasteTarget(ctx context.Context, dir, name string, op clipboard.Operation, isDir bool) (string, error) {
	if op == clipboard.Cut {
		return naming.MoveTarget(ctx, o.fs, dir, name, isDir)
	}
	return naming.CopyTarget(ctx, o.fs, dir, name)
}

// Paste pastes the clipboard into dest and returns the created paths.
// Items are processed in order; a failure stops the batch, leaves earlier
// items in place and is reported through a dialog.
func (o *Operations) Paste(ctx context.Context, dest string) (created []string, err error) {
	state := o.clipboard.Get()
	if len(state.Paths) == 0 {
		return nil, nil
	}
	dest = paths.Normalize(dest)

	opName, dialogOp := "copy", dialog.OpCopy
	if state.Operation == clipboard.Cut {
		opName, dialogOp = "move", dialog.OpMove
	}
	timer := monitoring.NewTimer(o.metrics, "paste_"+opName)
	defer func() { timer.Stop(err) }()

	if o.shell != nil && o.shell.IsVirtual(dest) {
		return nil, nil
	}

	for _, item := range state.Paths {
		if paths.Within(dest, item) {
			err = fmt.Errorf("paste %s into %s: %w", item, dest, ErrPasteIntoSelf)
			dialog.ShowError(o.dialogs, dialogOp, ErrPasteIntoSelf, "items")
			return nil, err
		}
	}

	for _, item := range state.Paths {
		target, perr := o.pasteOne(ctx, item, dest, state.Operation)
		if perr != nil {
			o.log.Error("Paste failed",
				zap.String("operation", opName),
				zap.String("source", item),
				zap.String("destination", dest),
				zap.Error(perr))
			dialog.ShowError(o.dialogs, dialogOp, perr, "items")
			return created, perr
		}
		created = append(created, target)
	}

	if state.Operation == clipboard.Cut {
		o.clipboard.Clear()
		o.undo.Push(undo.MoveEntry{From: state.Paths, To: created})
	} else {
		o.undo.Push(undo.CopyEntry{Created: created})
	}

	o.refresh(ctx)
	return created, nil
}

func (o *Operations) pasteOne(ctx context.Context, item, dest string, op clipboard.Operation) (string, error) {
	st, err := o.fs.Stat(ctx, item)
	if err != nil {
		return "", err
	}
	target, err := o.PasteTarget(ctx, dest, paths.Base(item), op, st.IsDir)
	if err != nil {
		return "", err
	}

	if op == clipboard.Cut {
		err = vfs.MoveRecursive(ctx, o.fs, item, target)
	} else {
		err = vfs.CopyRecursive(ctx, o.fs, item, target)
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

// DeleteMessage builds the confirmation text for deleting items
func DeleteMessage(items []string, permanent bool) string {
	if permanent {
		if len(items) == 1 {
			return fmt.Sprintf("Are you sure you want to permanently delete '%s'?", paths.Base(items[0]))
		}
		return fmt.Sprintf("Are you sure you want to permanently delete these %d items?", len(items))
	}
	if len(items) == 1 {
		return fmt.Sprintf("Are you sure you want to send '%s' to the Recycle Bin?", paths.Base(items[0]))
	}
	return fmt.Sprintf("Are you sure you want to send these %d items to the Recycle Bin?", len(items))
}

// Delete removes items after confirmation. Items already in the recycle
// bin are always deleted permanently. It reports whether anything was
// attempted; a declined confirmation is not an error.
func (o *Operations) Delete(ctx context.Context, items []string, permanent bool) (deleted bool, err error) {
	items = o.unprotected(items)
	if len(items) == 0 {
		return false, nil
	}

	alreadyRecycled := false
	for _, p := range items {
		if o.recycle.IsRecycledItemPath(p) {
			alreadyRecycled = true
			break
		}
	}
	permanent = permanent || alreadyRecycled

	if !o.dialogs.Confirm(ConfirmDeleteTitle, DeleteMessage(items, permanent)) {
		return false, nil
	}

	timer := monitoring.NewTimer(o.metrics, "delete")
	defer func() { timer.Stop(err) }()

	if permanent {
		err = o.deletePermanently(ctx, items, alreadyRecycled)
	} else {
		err = o.deleteToRecycleBin(ctx, items)
	}
	if err != nil {
		dialog.ShowError(o.dialogs, dialog.OpDelete, err, "items")
		return true, err
	}

	o.refresh(ctx)
	return true, nil
}

// deletePermanently removes items in order and stops at the first failure.
// With stripMetadata the bin entries of everything already removed are
// dropped even when the batch fails.
func (o *Operations) deletePermanently(ctx context.Context, items []string, stripMetadata bool) error {
	removed := make([]string, 0, len(items))
	var err error
	for _, p := range items {
		if err = o.fs.Remove(ctx, p, true); err != nil {
			o.log.Error("Delete failed", zap.String("path", p), zap.Error(err))
			break
		}
		removed = append(removed, p)
	}
	if stripMetadata && len(removed) > 0 {
		if serr := o.recycle.StripMetadata(ctx, removed); serr != nil {
			o.log.Error("Failed to update recycle bin metadata", zap.Error(serr))
			if err == nil {
				err = serr
			}
		}
	}
	return err
}

func (o *Operations) deleteToRecycleBin(ctx context.Context, items []string) error {
	ids, err := o.recycle.MoveToRecycleBin(ctx, items)
	// whatever reached the bin stays undoable even if the batch failed
	if len(ids) > 0 {
		o.undo.Push(undo.DeleteEntry{RecycledIDs: ids})
	}
	if err != nil {
		o.log.Error("Recycle failed", zap.Strings("paths", items), zap.Error(err))
	}
	return err
}

// unprotected normalizes items and drops protected ones
func (o *Operations) unprotected(items []string) []string {
	out := make([]string, 0, len(items))
	for _, p := range normalizeAll(items) {
		if o.IsProtected(p) {
			o.log.Debug("Skipping protected item", zap.String("path", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

// ValidateName checks a user-entered file name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Rename renames path to newName within its folder and returns the new
// path. An unchanged name is a no-op. Failures are returned for the
// caller to show inline; no dialog is raised.
func (o *Operations) Rename(ctx context.Context, path, newName string) (newPath string, err error) {
	path = paths.Normalize(path)
	newName = strings.TrimSpace(newName)
	if err := ValidateName(newName); err != nil {
		return path, err
	}
	if newName == paths.Base(path) {
		return path, nil
	}
	if o.IsProtected(path) {
		return path, fmt.Errorf("rename %s: %w", path, ErrProtected)
	}

	timer := monitoring.NewTimer(o.metrics, "rename")
	defer func() { timer.Stop(err) }()

	newPath = paths.Join(paths.Parent(path), newName)
	if err := o.fs.Rename(ctx, path, newPath); err != nil {
		o.log.Warn("Rename failed", zap.String("path", path), zap.String("name", newName), zap.Error(err))
		return path, err
	}

	o.undo.Push(undo.RenameEntry{From: path, To: newPath})
	o.refresh(ctx)
	return newPath, nil
}

// CreateNewFolder creates "New Folder" (or "New Folder (N)") in the current
// folder and puts it into inline-rename mode
func (o *Operations) CreateNewFolder(ctx context.Context) (string, error) {
	return o.create(ctx, naming.NewFolderName, true)
}

// CreateNewTextFile creates "New Text Document.txt" (or a numbered variant)
// in the current folder and puts it into inline-rename mode
func (o *Operations) CreateNewTextFile(ctx context.Context) (string, error) {
	return o.create(ctx, naming.NewTextFileName, false)
}

func (o *Operations) create(ctx context.Context, base string, isDir bool) (created string, err error) {
	dir := paths.Normalize(o.view.CurrentPath())
	if dir == paths.Root || (o.shell != nil && o.shell.IsVirtual(dir)) || o.recycle.IsRecycleBinPath(dir) || o.recycle.IsRecycledItemPath(dir) {
		return "", nil
	}

	opName, item := "create_file", "file"
	if isDir {
		opName, item = "create_folder", "folder"
	}
	timer := monitoring.NewTimer(o.metrics, opName)
	defer func() { timer.Stop(err) }()

	name, err := naming.NewItemName(ctx, o.fs, dir, base, isDir)
	if err == nil {
		created = paths.Join(dir, name)
		if isDir {
			err = o.fs.Mkdir(ctx, created, false)
		} else {
			err = o.fs.WriteFile(ctx, created, nil)
		}
	}
	if err != nil {
		o.log.Error("Create failed", zap.String("dir", dir), zap.Error(err))
		dialog.ShowError(o.dialogs, dialog.OpCreate, err, item)
		return "", err
	}

	o.undo.Push(undo.CreateEntry{Path: created})
	o.refresh(ctx)
	o.view.BeginRename(created)
	return created, nil
}

func (o *Operations) refresh(ctx context.Context) {
	if o.view == nil {
		return
	}
	if err := o.view.Refresh(ctx); err != nil {
		o.log.Warn("Refresh failed", zap.Error(err))
	}
}

func normalizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = paths.Normalize(p)
	}
	return out
}
