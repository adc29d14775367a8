package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	explorerProvider "github.com/GriffinCanCode/AgentOS/zenexplorer/internal/providers/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/service"
)

type fixture struct {
	router *gin.Engine
	ws     *explorer.Workspace
	window *explorer.Window
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	metrics := monitoring.NewMetrics()
	ws, err := explorer.NewWorkspace(ctx, explorer.Options{
		Explorer: config.Default().Explorer,
		Reserved: config.Default().Drives.Reserved,
		Metrics:  metrics,
	})
	require.NoError(t, err)
	t.Cleanup(ws.Close)

	w, err := ws.OpenWindow(ctx, "")
	require.NoError(t, err)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(explorerProvider.NewProvider(ws, nil)))

	h := NewHandlers(ws, registry, metrics, nil)
	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)
	router.GET("/explorer/windows", h.ListWindows)
	router.GET("/explorer/windows/:id/state", h.WindowState)
	router.GET("/explorer/windows/:id/listing", h.WindowListing)
	router.GET("/metrics/json", h.MetricsJSON)

	return &fixture{router: router, ws: ws, window: w}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestRootAndHealth(t *testing.T) {
	f := setup(t)

	code, body := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, Version, body["version"])

	code, body = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	explorerStats := body["explorer"].(map[string]interface{})
	assert.Equal(t, float64(1), explorerStats["windows"])
	assert.Equal(t, true, explorerStats["recycle_bin_empty"])
}

func TestListAndDiscoverServices(t *testing.T) {
	f := setup(t)

	code, body := f.do(t, http.MethodGet, "/services", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["services"], 1)

	code, body = f.do(t, http.MethodGet, "/services?category=media", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["services"])

	code, _ = f.do(t, http.MethodGet, "/services?category=Bad%20Cat", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodPost, "/services/discover", gin.H{"query": "rename files in the recycle bin"})
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, body["services"], 1)

	code, _ = f.do(t, http.MethodPost, "/services/discover", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestExecuteService(t *testing.T) {
	f := setup(t)

	code, body := f.do(t, http.MethodPost, "/services/execute", gin.H{
		"tool_id":   "explorer.new_folder",
		"window_id": f.window.ID,
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/C:/New Folder", body["data"].(map[string]interface{})["path"])

	code, body = f.do(t, http.MethodPost, "/services/execute", gin.H{
		"tool_id": "explorer.navigate",
		"params":  gin.H{"path": "/C:/New Folder"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/C:/New Folder", f.window.CurrentPath())

	code, _ = f.do(t, http.MethodPost, "/services/execute", gin.H{"tool_id": "bad tool"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/services/execute", gin.H{"tool_id": "explorer.list", "window_id": "../x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodPost, "/services/execute", gin.H{"tool_id": "nothing.here"})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body["error"], "service not found")
}

func TestWindowEndpoints(t *testing.T) {
	f := setup(t)

	code, body := f.do(t, http.MethodGet, "/explorer/windows", nil)
	assert.Equal(t, http.StatusOK, code)
	windows := body["windows"].([]interface{})
	require.Len(t, windows, 1)
	assert.Equal(t, f.window.ID, windows[0].(map[string]interface{})["id"])

	code, body = f.do(t, http.MethodGet, "/explorer/windows/"+f.window.ID+"/state", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/C:", body["path"])

	code, body = f.do(t, http.MethodGet, "/explorer/windows/"+f.window.ID+"/listing", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/C:", body["path"])

	code, _ = f.do(t, http.MethodGet, "/explorer/windows/nope/state", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetricsJSON(t *testing.T) {
	f := setup(t)

	code, body := f.do(t, http.MethodGet, "/metrics/json", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "backend")
}
