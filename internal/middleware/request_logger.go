package middleware

import (
	"time"

	"github.com/Fahad602/Dash-KanBan/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger returns a gin middleware that logs every request with structured fields
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Generate request ID
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		// Process request
		c.Next()

		reqLog := logger.WithRequestID(requestID)
		if len(c.Errors) > 0 {
			reqLog.Error().
				Str("errors", c.Errors.String()).
				Msg("request errors")
		}

		// Log after response
		latency := time.Since(start)
		status := c.Writer.Status()
		viewerID := GetViewerID(c)

		event := reqLog.Info()
		if status >= 500 {
			event = reqLog.Error()
		} else if status >= 400 {
			event = reqLog.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("viewer_id", viewerID).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}
