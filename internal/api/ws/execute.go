package ws

import (
	"context"
	"time"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/utils"
)

func (h *Handler) execute(ctx context.Context, cn *conn, msg types.WSMessage, log *logging.Logger) {
	if err := utils.ValidateToolID(msg.ToolID, "tool_id", true); err != nil {
		h.sendError(cn, msg.ID, err.Error(), log)
		return
	}
	if err := utils.ValidateParams(msg.Params); err != nil {
		h.sendError(cn, msg.ID, err.Error(), log)
		return
	}
	if msg.WindowID != nil {
		if err := utils.ValidateID(*msg.WindowID, "window_id", false); err != nil {
			h.sendError(cn, msg.ID, err.Error(), log)
			return
		}
	}

	requestID := msg.ID
	appCtx := &types.Context{WindowID: msg.WindowID, RequestID: &requestID}
	result, err := h.registry.Execute(ctx, msg.ToolID, msg.Params, appCtx)
	if err != nil {
		h.sendError(cn, msg.ID, err.Error(), log)
		return
	}

	h.write(cn, types.WSMessage{
		Type:   "result",
		ID:     msg.ID,
		ToolID: msg.ToolID,
		Result: result,
		Time:   time.Now().Unix(),
	}, log)
}
