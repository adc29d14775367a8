package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string                 `json:"tool_id" binding:"required"`
	Params   map[string]interface{} `json:"params"`
	WindowID *string                `json:"window_id,omitempty"`
}

// WSMessage represents a WebSocket frame in either direction. Clients send
// "ping" and "execute"; the server sends "system", "pong", "result",
// "error" and one frame per explorer change event.
type WSMessage struct {
	Type     string                 `json:"type"`
	ID       string                 `json:"id,omitempty"`
	ToolID   string                 `json:"tool_id,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
	WindowID *string                `json:"window_id,omitempty"`
	Path     string                 `json:"path,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Result   *Result                `json:"result,omitempty"`
	Time     int64                  `json:"time,omitempty"`
}
