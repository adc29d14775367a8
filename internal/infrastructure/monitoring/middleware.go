package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Operation outcome labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// Use the route template so path parameters do not explode cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures a file operation
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
}

// NewTimer starts timing op
func NewTimer(metrics *Metrics, op string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		op:      op,
	}
}

// Stop records the duration with an outcome derived from err
func (t *Timer) Stop(err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	t.metrics.RecordFileOp(t.op, status, time.Since(t.start))
}
