// Package types provides shared data structures for the explorer backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Context: Execution context (target window, request id)
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - WSMessage: WebSocket event frames
//
// Example Usage:
//
//	res, err := registry.Execute(ctx, "explorer.navigate",
//	    map[string]interface{}{"path": "C:\\Windows"},
//	    &types.Context{WindowID: &id})
package types
