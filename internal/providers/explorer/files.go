package explorer

import (
	"context"

	core "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

func (p *Provider) cut(w *core.Window, params map[string]interface{}) (*types.Result, error) {
	items := getStrings(params, "paths")
	if len(items) == 0 {
		return failure("paths parameter required")
	}
	w.Ops().Cut(items)
	return success(map[string]interface{}{"clipboard": p.ws.Clipboard().Get()})
}

func (p *Provider) copy(w *core.Window, params map[string]interface{}) (*types.Result, error) {
	items := getStrings(params, "paths")
	if len(items) == 0 {
		return failure("paths parameter required")
	}
	w.Ops().Copy(items)
	return success(map[string]interface{}{"clipboard": p.ws.Clipboard().Get()})
}

func (p *Provider) paste(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	dest := getString(params, "destination")
	if dest == "" {
		dest = w.CurrentPath()
	}
	created, err := w.Ops().Paste(ctx, dest)
	if err != nil {
		p.logFailure("paste", err)
		return failuref("paste failed: %v", err)
	}
	if created == nil {
		created = []string{}
	}
	return success(map[string]interface{}{"created": created, "count": len(created)})
}

func (p *Provider) delete(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	items := getStrings(params, "paths")
	if len(items) == 0 {
		return failure("paths parameter required")
	}
	deleted, err := w.Ops().Delete(ctx, items, getBool(params, "permanent"))
	if err != nil {
		p.logFailure("delete", err)
		return failuref("delete failed: %v", err)
	}
	return success(map[string]interface{}{"deleted": deleted})
}

func (p *Provider) rename(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	path := getString(params, "path")
	name := getString(params, "name")
	if path == "" || name == "" {
		return failure("path and name parameters required")
	}
	newPath, err := w.Ops().Rename(ctx, path, name)
	if err != nil {
		return failuref("rename failed: %v", err)
	}
	return success(map[string]interface{}{"path": newPath})
}

func (p *Provider) created(path string, err error) (*types.Result, error) {
	if err != nil {
		return failuref("create failed: %v", err)
	}
	return success(map[string]interface{}{"path": path})
}

func (p *Provider) undo(ctx context.Context, w *core.Window) (*types.Result, error) {
	label := p.ws.Undo().Label()
	undone, err := w.Ops().Undo(ctx)
	if err != nil {
		return failuref("undo failed: %v", err)
	}
	return success(map[string]interface{}{"undone": undone, "label": label})
}

func (p *Provider) beginRename(w *core.Window, params map[string]interface{}) (*types.Result, error) {
	path := getString(params, "path")
	if path == "" {
		return failure("path parameter required")
	}
	if !w.BeginRename(path) {
		return failuref("cannot rename %s", path)
	}
	return success(map[string]interface{}{"rename": w.Rename()})
}

func (p *Provider) commitRename(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	newPath, err := w.CommitRename(ctx, getString(params, "name"))
	if err != nil {
		return failuref("rename failed: %v", err)
	}
	return success(map[string]interface{}{"path": newPath})
}

func (p *Provider) restore(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	items := getStrings(params, "paths")
	if len(items) == 0 {
		return failure("paths parameter required")
	}
	restored, err := p.ws.RestoreItems(ctx, items)
	if err != nil {
		return failuref("restore failed: %v", err)
	}
	return success(map[string]interface{}{"restored": restored, "count": len(restored)})
}

func (p *Provider) emptyRecycleBin(ctx context.Context) (*types.Result, error) {
	emptied, err := p.ws.EmptyRecycleBin(ctx)
	if err != nil {
		return failuref("empty recycle bin failed: %v", err)
	}
	return success(map[string]interface{}{"emptied": emptied})
}
