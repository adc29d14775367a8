package explorer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	core "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

// Provider implements the explorer service over a workspace
type Provider struct {
	ws       *core.Workspace
	sessions *session.Manager
	log      *logging.Logger
}

// NewProvider creates an explorer provider
func NewProvider(ws *core.Workspace, log *logging.Logger) *Provider {
	return &Provider{
		ws:  ws,
		log: logging.OrNop(log).Named("explorer-provider"),
	}
}

// WithSessions enables the session tools
func (p *Provider) WithSessions(sessions *session.Manager) *Provider {
	p.sessions = sessions
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "explorer",
		Name:        "Explorer Service",
		Description: "Virtual file manager with drives, recycle bin, clipboard and undo",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"navigate",
			"list",
			"copy",
			"move",
			"rename",
			"delete",
			"undo",
			"recycle_bin",
			"removable_media",
			"properties",
			"sessions",
		},
		Tools: p.getTools(),
		DataModels: []types.DataModel{
			{
				Name: "Item",
				Fields: map[string]string{
					"name":     "string",
					"path":     "string",
					"is_dir":   "boolean",
					"size":     "number",
					"modified": "datetime",
					"type":     "string",
					"icon":     "string",
				},
			},
		},
	}
}

// Execute runs an explorer tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	// Workspace-level tools
	switch toolID {
	case "explorer.empty_recycle_bin":
		return p.emptyRecycleBin(ctx)
	case "explorer.insert_floppy":
		return p.insertFloppy(params)
	case "explorer.eject_floppy":
		return p.ejectFloppy(ctx)
	case "explorer.insert_cd":
		return p.insertCD(params)
	case "explorer.eject_cd":
		return p.ejectCD(ctx)
	case "explorer.insert_removable":
		return p.insertRemovable(ctx, params)
	case "explorer.eject_removable":
		return p.ejectRemovable(ctx, params)
	case "explorer.drives":
		return success(map[string]interface{}{"drives": p.ws.Drives().Drives()})
	case "explorer.dismiss_prompt":
		p.ws.Drives().DismissPrompt()
		return success(map[string]interface{}{"dismissed": true})
	case "explorer.open_window":
		return p.openWindow(ctx, params)
	case "explorer.windows":
		return p.windows()
	case "explorer.messages":
		return p.messages()
	case "explorer.set_confirm":
		return p.setConfirm(params)
	case "explorer.save_session", "explorer.list_sessions", "explorer.restore_session", "explorer.delete_session":
		return p.session(ctx, toolID, params)
	}

	w, err := p.window(ctx, params, appCtx)
	if err != nil {
		return failure(err.Error())
	}

	switch toolID {
	case "explorer.navigate":
		return p.navigate(ctx, w, params)
	case "explorer.go_up":
		return p.afterNav(ctx, w, w.Navigator().GoUp(ctx))
	case "explorer.go_back":
		return p.afterNav(ctx, w, w.Navigator().GoBack(ctx))
	case "explorer.go_forward":
		return p.afterNav(ctx, w, w.Navigator().GoForward(ctx))
	case "explorer.select_mru":
		return p.selectMRU(ctx, w, params)
	case "explorer.refresh":
		return p.afterNav(ctx, w, w.Refresh(ctx))
	case "explorer.list":
		return p.list(ctx, w)
	case "explorer.open":
		return p.open(ctx, w, params)
	case "explorer.properties":
		return p.properties(ctx, params)
	case "explorer.state":
		return p.state(ctx, w)
	case "explorer.cut":
		return p.cut(w, params)
	case "explorer.copy":
		return p.copy(w, params)
	case "explorer.paste":
		return p.paste(ctx, w, params)
	case "explorer.delete":
		return p.delete(ctx, w, params)
	case "explorer.rename":
		return p.rename(ctx, w, params)
	case "explorer.new_folder":
		return p.created(w.Ops().CreateNewFolder(ctx))
	case "explorer.new_text_file":
		return p.created(w.Ops().CreateNewTextFile(ctx))
	case "explorer.undo":
		return p.undo(ctx, w)
	case "explorer.begin_rename":
		return p.beginRename(w, params)
	case "explorer.commit_rename":
		return p.commitRename(ctx, w, params)
	case "explorer.cancel_rename":
		if err := w.CancelRename(ctx); err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"cancelled": true})
	case "explorer.restore":
		return p.restore(ctx, params)
	case "explorer.close_window":
		if err := p.ws.CloseWindow(w.ID); err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"closed": true, "window_id": w.ID})
	case "explorer.focus_window":
		if err := p.ws.Focus(w.ID); err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"focused": true, "window_id": w.ID})
	case "explorer.set_view":
		if err := w.SetViewMode(core.ViewMode(getString(params, "mode"))); err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"view_mode": w.ViewMode()})
	default:
		return failuref("unknown tool: %s", toolID)
	}
}

// window resolves the target window: explicit parameter, execution
// context, focused window, then a freshly opened one
func (p *Provider) window(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*core.Window, error) {
	id := getString(params, "window_id")
	if id == "" && appCtx != nil && appCtx.WindowID != nil {
		id = *appCtx.WindowID
	}
	if id != "" {
		w, ok := p.ws.Window(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrWindowNotFound, id)
		}
		return w, nil
	}
	if w, ok := p.ws.Focused(); ok {
		return w, nil
	}
	p.log.Debug("No window open, opening one")
	return p.ws.OpenWindow(ctx, "")
}

func (p *Provider) openWindow(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	w, err := p.ws.OpenWindow(ctx, getString(params, "path"))
	if err != nil {
		return failuref("open window failed: %v", err)
	}
	return p.state(ctx, w)
}

func (p *Provider) windows() (*types.Result, error) {
	focused, _ := p.ws.Focused()
	list := make([]map[string]interface{}, 0)
	for _, w := range p.ws.Windows() {
		list = append(list, map[string]interface{}{
			"id":        w.ID,
			"path":      w.CurrentPath(),
			"created":   w.Created,
			"view_mode": w.ViewMode(),
			"focused":   focused != nil && focused.ID == w.ID,
		})
	}
	return success(map[string]interface{}{"windows": list, "count": len(list)})
}

func (p *Provider) state(ctx context.Context, w *core.Window) (*types.Result, error) {
	s, err := w.State(ctx)
	if err != nil {
		return failuref("state failed: %v", err)
	}
	return success(map[string]interface{}{"state": s})
}

func (p *Provider) messages() (*types.Result, error) {
	messages := p.ws.DrainMessages()
	return success(map[string]interface{}{"messages": messages, "count": len(messages)})
}

func (p *Provider) setConfirm(params map[string]interface{}) (*types.Result, error) {
	answer, ok := params["answer"].(bool)
	if !ok {
		return failure("answer parameter required")
	}
	if !p.ws.SetConfirmAnswer(answer) {
		return failure("dialogs are not recorded")
	}
	return success(map[string]interface{}{"answer": answer})
}

func (p *Provider) logFailure(tool string, err error) {
	p.log.Debug("Tool failed", zap.String("tool", tool), zap.Error(err))
}
