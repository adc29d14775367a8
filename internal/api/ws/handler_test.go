package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/service"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
)

type echoProvider struct{}

func (echoProvider) Definition() types.Service {
	return types.Service{ID: "echo", Name: "Echo", Category: types.CategorySystem}
}

func (echoProvider) Execute(_ context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	data := map[string]interface{}{"tool": toolID, "params": params}
	if appCtx != nil && appCtx.WindowID != nil {
		data["window_id"] = *appCtx.WindowID
	}
	return &types.Result{Success: true, Data: data}, nil
}

func setup(t *testing.T) (*websocket.Conn, *events.Bus, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := events.NewBus(8)
	t.Cleanup(bus.Close)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(echoProvider{}))

	metrics := monitoring.NewMetrics()
	h := NewHandler(bus, registry, metrics, nil)

	router := gin.New()
	router.GET("/stream", h.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	welcome := read(t, conn)
	assert.Equal(t, "system", welcome.Type)
	assert.NotEmpty(t, welcome.ID)
	return conn, bus, metrics
}

func read(t *testing.T, conn *websocket.Conn) types.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg types.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPing(t *testing.T) {
	conn, _, _ := setup(t)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "ping", ID: "1"}))
	msg := read(t, conn)
	assert.Equal(t, "pong", msg.Type)
	assert.Equal(t, "1", msg.ID)
}

func TestForwardsBusEvents(t *testing.T) {
	conn, bus, metrics := setup(t)

	// the subscription is registered before the welcome frame is sent
	bus.Publish(events.RecycleBinChanged, "/C:/Recycled")

	msg := read(t, conn)
	assert.Equal(t, string(events.RecycleBinChanged), msg.Type)
	assert.Equal(t, "/C:/Recycled", msg.Path)
	assert.NotZero(t, msg.Time)
	assert.Equal(t, int64(1), metrics.Snapshot().WSConnections)
}

func TestExecute(t *testing.T) {
	conn, _, _ := setup(t)

	window := "w-1"
	require.NoError(t, conn.WriteJSON(types.WSMessage{
		Type:     "execute",
		ID:       "42",
		ToolID:   "echo.say",
		Params:   map[string]interface{}{"text": "hi"},
		WindowID: &window,
	}))

	msg := read(t, conn)
	assert.Equal(t, "result", msg.Type)
	assert.Equal(t, "42", msg.ID)
	require.NotNil(t, msg.Result)
	assert.True(t, msg.Result.Success)
	assert.Equal(t, "echo.say", msg.Result.Data["tool"])
	assert.Equal(t, "w-1", msg.Result.Data["window_id"])
}

func TestErrors(t *testing.T) {
	conn, _, _ := setup(t)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "execute", ID: "1", ToolID: "missing.tool"}))
	msg := read(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Message, "service not found")

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "execute", ID: "2"}))
	msg = read(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "2", msg.ID)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "dance"}))
	assert.Equal(t, "unknown message type", read(t, conn).Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, "malformed message", read(t, conn).Message)
}
