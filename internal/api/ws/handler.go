package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/service"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/events"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = utils.MaxParamsSize
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS middleware
	},
}

// Subscriber is the part of the event bus the handler needs
type Subscriber interface {
	SubscribeAll() <-chan events.Event
	Unsubscribe(ch <-chan events.Event)
}

// Handler manages WebSocket connections
type Handler struct {
	bus      Subscriber
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(bus Subscriber, registry *service.Registry, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	return &Handler{
		bus:      bus,
		registry: registry,
		metrics:  metrics,
		log:      logging.OrNop(log).Named("ws"),
	}
}

// conn serializes writes; gorilla allows one concurrent writer
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg types.WSMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	connID := id.NewConnectionID().String()
	log := h.log.With(zap.String("conn", connID))
	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	cn := &conn{ws: ws}
	sub := h.bus.SubscribeAll()
	defer h.bus.Unsubscribe(sub)

	done := make(chan struct{})
	defer close(done)
	go h.forward(cn, sub, done, log)

	h.write(cn, types.WSMessage{
		Type:    "system",
		ID:      connID,
		Message: "Connected to ZenExplorer",
		Time:    time.Now().Unix(),
	}, log)

	ws.SetReadLimit(int64(maxMessage))
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	reqCtx := c.Request.Context()
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(cn, "", "malformed message", log)
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "ping":
			h.write(cn, types.WSMessage{Type: "pong", ID: msg.ID, Time: time.Now().Unix()}, log)
		case "execute":
			h.execute(reqCtx, cn, msg, log)
		default:
			h.sendError(cn, msg.ID, "unknown message type", log)
		}
	}
}

// forward relays bus events until the connection closes and keeps the
// connection alive with pings
func (h *Handler) forward(cn *conn, sub <-chan events.Event, done <-chan struct{}, log *logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			h.write(cn, types.WSMessage{
				Type: string(ev.Type),
				Path: ev.Path,
				Time: ev.Time.Unix(),
			}, log)
		case <-ticker.C:
			if err := cn.ping(); err != nil {
				log.Debug("Ping failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) write(cn *conn, msg types.WSMessage, log *logging.Logger) {
	if err := cn.send(msg); err != nil {
		log.Debug("WebSocket write failed", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	h.metrics.RecordWSMessage("out", msg.Type)
}

func (h *Handler) sendError(cn *conn, requestID, message string, log *logging.Logger) {
	h.write(cn, types.WSMessage{
		Type:    "error",
		ID:      requestID,
		Message: message,
		Time:    time.Now().Unix(),
	}, log)
}
