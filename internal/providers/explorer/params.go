package explorer

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

func failuref(format string, args ...interface{}) (*types.Result, error) {
	return failure(fmt.Sprintf(format, args...))
}

func getString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func getBool(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

// getInt accepts JSON numbers, which decode as float64
func getInt(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// getStrings reads a list parameter; a single string is a one-item list
func getStrings(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// getFiles reads a {path: content} object used to seed inserted media
func getFiles(params map[string]interface{}, key string) map[string]string {
	out := make(map[string]string)
	switch v := params[key].(type) {
	case map[string]string:
		for k, c := range v {
			out[k] = c
		}
	case map[string]interface{}:
		for k, c := range v {
			if s, ok := c.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}
