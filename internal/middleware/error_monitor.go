package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
)

// ErrorMonitor counts application errors by code and feeds the analytics
// aggregator shown on the admin surface.
type ErrorMonitor struct {
	errorCounts map[errors.ErrorCode]int
	analytics   *errors.ErrorAnalytics
	mu          sync.RWMutex
}

func NewErrorMonitor() *ErrorMonitor {
	return &ErrorMonitor{
		errorCounts: make(map[errors.ErrorCode]int),
		analytics:   errors.NewErrorAnalytics(),
	}
}

func (m *ErrorMonitor) RecordError(err error, ctx errors.ErrorContext) {
	if appErr, ok := err.(*errors.AppError); ok {
		m.mu.Lock()
		m.errorCounts[appErr.Code]++
		m.mu.Unlock()
	}

	traced := errors.NewTracedError(err, ctx).AddLabel("method", ctx.Method)
	m.analytics.Record(traced)
}

func (m *ErrorMonitor) GetErrorCounts() map[errors.ErrorCode]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[errors.ErrorCode]int)
	for code, count := range m.errorCounts {
		counts[code] = count
	}
	return counts
}

// GetAnalytics returns the aggregated error statistics snapshot.
func (m *ErrorMonitor) GetAnalytics() map[string]interface{} {
	return m.analytics.GetStats()
}

// ErrorMonitorMiddleware records errors attached to the gin context.
func ErrorMonitorMiddleware(monitor *ErrorMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ctx := errors.ErrorContext{
			Path:      c.Request.URL.Path,
			Method:    c.Request.Method,
			Timestamp: time.Now(),
		}
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(int); ok {
				ctx.UserID = id
			}
		}

		for _, e := range c.Errors {
			monitor.RecordError(e.Err, ctx)
			if appErr, ok := e.Err.(*errors.AppError); ok {
				zap.L().Error("request error",
					zap.Int("error_code", int(appErr.Code)),
					zap.String("error_message", appErr.Message),
					zap.Error(appErr.Err),
					zap.String("path", ctx.Path),
					zap.String("method", ctx.Method))
			}
		}
	}
}
