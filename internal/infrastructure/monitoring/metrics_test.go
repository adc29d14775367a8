package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordFileOp("paste", StatusSuccess, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.FileOps.WithLabelValues("paste", StatusSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FileOps.WithLabelValues("paste", StatusSuccess)))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	m.RecordHTTPRequest("POST", "/services/execute", "500", time.Millisecond)
	m.RecordFileOp("delete", StatusError, time.Millisecond)
	m.SetUndoDepth(3)
	m.SetRecycleItems(2)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.Equal(t, int64(1), snap.FileOps)
	assert.Equal(t, int64(1), snap.FileOpErrors)
	assert.Equal(t, int64(3), snap.UndoDepth)
	assert.Equal(t, int64(2), snap.RecycleItems)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFileOp("paste", StatusSuccess, 0)
		m.RecordNavigation("ok")
		m.RecordUndo("move", StatusSuccess)
		m.SetUndoDepth(1)
		m.SetRecycleItems(1)
		m.SetClipboardItems(1)
		m.SetMountedDrives(1)
		m.RegisterEventDrops(func() int64 { return 0 })
		NewTimer(m, "create").Stop(errors.New("boom"))
	})
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestTimer(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "rename").Stop(nil)
	NewTimer(m, "rename").Stop(errors.New("taken"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FileOps.WithLabelValues("rename", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FileOps.WithLabelValues("rename", StatusError)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	m.RegisterEventDrops(func() int64 { return 7 })

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/items/42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/items/:id", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "zenexplorer_http_requests_total"))
	assert.True(t, strings.Contains(body, "zenexplorer_events_dropped_total 7"))
	assert.True(t, strings.Contains(body, "zenexplorer_uptime_seconds"))
}
