package fileops

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/undo"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/vfs"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/paths"
)

// UndoTitle is the title of the dialog reporting a failed undo
const UndoTitle = "Undo"

// Undo inverts the most recent operation. The entry is popped only when
// the inversion succeeds; otherwise it stays on the stack and the failure
// is reported through a dialog.
func (o *Operations) Undo(ctx context.Context) (undone bool, err error) {
	entry := o.undo.Peek()
	if entry == nil {
		return false, nil
	}
	kind := string(entry.Kind())

	if err := o.invert(ctx, entry); err != nil {
		o.metrics.RecordUndo(kind, monitoring.StatusError)
		o.log.Warn("Undo failed", zap.String("kind", kind), zap.Error(err))
		o.dialogs.Alert(UndoTitle, "Could not undo operation: "+err.Error())
		return false, err
	}

	o.undo.Pop()
	o.metrics.RecordUndo(kind, monitoring.StatusSuccess)
	o.refresh(ctx)
	return true, nil
}

func (o *Operations) invert(ctx context.Context, entry undo.Entry) error {
	switch e := entry.(type) {
	case undo.RenameEntry:
		return o.undoRename(ctx, e)
	case undo.MoveEntry:
		return o.undoMove(ctx, e)
	case undo.CopyEntry:
		return o.removeAll(ctx, e.Created)
	case undo.DeleteEntry:
		_, err := o.recycle.RestoreItems(ctx, e.RecycledIDs)
		return err
	case undo.CreateEntry:
		return o.removeAll(ctx, []string{e.Path})
	default:
		return fmt.Errorf("unknown undo entry %T", entry)
	}
}

func (o *Operations) undoRename(ctx context.Context, e undo.RenameEntry) error {
	if err := o.requireFree(ctx, e.From); err != nil {
		return err
	}
	return o.fs.Rename(ctx, e.To, e.From)
}

// undoMove checks every pair before moving anything back
func (o *Operations) undoMove(ctx context.Context, e undo.MoveEntry) error {
	if len(e.From) != len(e.To) {
		return fmt.Errorf("corrupt move entry: %d sources, %d targets", len(e.From), len(e.To))
	}
	for i := range e.To {
		if _, err := o.fs.Stat(ctx, e.To[i]); err != nil {
			return err
		}
		if err := o.requireFree(ctx, e.From[i]); err != nil {
			return err
		}
	}
	for i := range e.To {
		if err := vfs.MoveRecursive(ctx, o.fs, e.To[i], e.From[i]); err != nil {
			return err
		}
	}
	return nil
}

func (o *Operations) requireFree(ctx context.Context, path string) error {
	taken, err := vfs.Exists(ctx, o.fs, path)
	if err != nil {
		return err
	}
	if taken {
		return &CollisionError{Name: paths.Base(path)}
	}
	return nil
}

func (o *Operations) removeAll(ctx context.Context, items []string) error {
	for _, p := range items {
		if err := o.fs.Remove(ctx, p, true); err != nil && !vfs.IsNotExist(err) {
			return err
		}
	}
	return nil
}
