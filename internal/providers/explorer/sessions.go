package explorer

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/utils"
)

func (p *Provider) session(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if p.sessions == nil {
		return failure("sessions are not enabled")
	}

	switch toolID {
	case "explorer.save_session":
		name := getString(params, "name")
		if err := utils.ValidateString(name, "name", 1, 128, true); err != nil {
			return failure(err.Error())
		}
		sess, err := p.sessions.Save(ctx, name, getString(params, "description"))
		if err != nil {
			return failuref("save session failed: %v", err)
		}
		return success(map[string]interface{}{"session": sess.ToMetadata()})

	case "explorer.list_sessions":
		list := p.sessions.List()
		return success(map[string]interface{}{"sessions": list, "count": len(list)})
	}

	id := getString(params, "session_id")
	if err := utils.ValidateID(id, "session_id", true); err != nil {
		return failure(err.Error())
	}

	if toolID == "explorer.delete_session" {
		if err := p.sessions.Delete(id); err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"deleted": true, "session_id": id})
	}

	if err := p.sessions.Restore(ctx, id); err != nil {
		p.logFailure("restore_session", err)
		return failuref("restore session failed: %v", err)
	}
	return p.windows()
}
