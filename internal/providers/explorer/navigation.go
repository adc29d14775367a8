package explorer

import (
	"context"
	"errors"

	core "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

func (p *Provider) navigate(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	path := getString(params, "path")
	if path == "" {
		return failure("path parameter required")
	}
	return p.afterNav(ctx, w, w.Navigator().NavigateTo(ctx, path))
}

func (p *Provider) selectMRU(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	id, ok := getInt(params, "id")
	if !ok {
		return failure("id parameter required")
	}
	return p.afterNav(ctx, w, w.Navigator().SelectMRU(ctx, id))
}

// afterNav reports a navigation outcome with the resulting window state
func (p *Provider) afterNav(ctx context.Context, w *core.Window, err error) (*types.Result, error) {
	if err != nil {
		p.logFailure("navigate", err)
		return failuref("navigation failed: %v", err)
	}
	return p.state(ctx, w)
}

func (p *Provider) list(ctx context.Context, w *core.Window) (*types.Result, error) {
	l, err := w.List(ctx)
	if err != nil {
		return failuref("list failed: %v", err)
	}
	return success(map[string]interface{}{"listing": l, "count": len(l.Items)})
}

func (p *Provider) open(ctx context.Context, w *core.Window, params map[string]interface{}) (*types.Result, error) {
	path := getString(params, "path")
	if path == "" {
		return failure("path parameter required")
	}
	res, err := w.Open(ctx, path)
	if errors.Is(err, core.ErrNoAssociation) {
		return failuref("cannot open %s: no association", path)
	}
	if err != nil {
		return failuref("open failed: %v", err)
	}
	return success(map[string]interface{}{"result": res, "path": w.CurrentPath()})
}

func (p *Provider) properties(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	items := getStrings(params, "paths")
	if len(items) == 0 {
		return failure("paths parameter required")
	}
	props, err := p.ws.Lister().Properties(ctx, items)
	if err != nil {
		return failuref("properties failed: %v", err)
	}
	return success(map[string]interface{}{"properties": props})
}
