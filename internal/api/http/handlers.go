package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/service"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	ws       *explorer.Workspace
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(ws *explorer.Workspace, registry *service.Registry, metrics *monitoring.Metrics, log *logging.Logger) *Handlers {
	return &Handlers{
		ws:       ws,
		registry: registry,
		metrics:  metrics,
		log:      logging.OrNop(log).Named("http"),
	}
}

// DiscoverRequest is the body of POST /services/discover
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// Root handles liveness checks
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "ZenExplorer",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	empty, err := h.ws.Recycle().IsEmpty(c.Request.Context())
	status := "healthy"
	if err != nil {
		status = "degraded"
		h.log.Warn("Recycle bin unreadable", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           status,
		"service_registry": h.registry.Stats(),
		"explorer": gin.H{
			"windows":           len(h.ws.Windows()),
			"drives":            h.ws.Drives().Drives(),
			"undo_depth":        h.ws.Undo().Len(),
			"clipboard":         h.ws.Clipboard().Get(),
			"recycle_bin_empty": empty,
			"events_dropped":    h.ws.Bus().Dropped(),
		},
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices finds services relevant to a free-text query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": h.registry.Discover(req.Query, req.Limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	windowID := req.WindowID
	if windowID == nil {
		if header := c.GetHeader("X-Window-ID"); header != "" {
			windowID = &header
		}
	}
	if windowID != nil {
		if err := utils.ValidateID(*windowID, "window_id", false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	requestID := string(tracing.GetTraceID(c.Request.Context()))
	appCtx := &types.Context{WindowID: windowID, RequestID: &requestID}

	start := time.Now()
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		h.log.Error("Tool execution failed",
			zap.String("tool", req.ToolID),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListWindows lists open explorer windows
func (h *Handlers) ListWindows(c *gin.Context) {
	focused, _ := h.ws.Focused()
	windows := make([]gin.H, 0)
	for _, w := range h.ws.Windows() {
		windows = append(windows, gin.H{
			"id":        w.ID,
			"path":      w.CurrentPath(),
			"created":   w.Created,
			"view_mode": w.ViewMode(),
			"focused":   focused != nil && focused.ID == w.ID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// WindowState returns the toolbar and address bar state of a window
func (h *Handlers) WindowState(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	state, err := w.State(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// WindowListing returns the rendered contents of a window's folder
func (h *Handlers) WindowListing(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	l, err := w.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, l)
}

// MetricsJSON returns the metrics snapshot
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now(),
		"backend":   h.metrics.Snapshot(),
	})
}

func (h *Handlers) window(c *gin.Context) (*explorer.Window, bool) {
	id := c.Param("id")
	if err := utils.ValidateID(id, "window_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	w, ok := h.ws.Window(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": explorer.ErrWindowNotFound.Error(), "window_id": id})
		return nil, false
	}
	return w, true
}
