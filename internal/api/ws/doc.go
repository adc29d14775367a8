/*
Package ws streams explorer change notifications over WebSocket and
accepts tool executions on the same connection.

Every connection subscribes to all bus events. Each event becomes a frame

	{"type": "clipboard_changed", "path": "", "time": 1700000000}

so a front end can re-query the state it shows. Clients may send

	{"type": "ping"}
	{"type": "execute", "id": "7", "tool_id": "explorer.paste", "window_id": "..."}

and receive "pong" or a "result" frame carrying the same id.
*/
package ws
