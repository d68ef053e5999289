package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
)

// RequestID injects a unique X-Request-Id header into every
// request/response, reusing the caller's ID when one is supplied.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// Recovery recovers from handler panics, logs the stack, and returns a
// generic 500.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":            fmt.Sprintf("%v", err),
					"stack":            string(debug.Stack()),
					logger.FieldPath:   c.Request.URL.Path,
					logger.FieldMethod: c.Request.Method,
					"client_ip":        c.ClientIP(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger logs every request with method, path, status, and
// latency. Health and liveness probes are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProbeEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			logger.FieldMethod: c.Request.Method,
			logger.FieldPath:   path,
			logger.FieldStatus: status,
			"latency":          time.Since(start).String(),
			"client":           c.ClientIP(),
		}
		if id := c.GetString("request_id"); id != "" {
			fields[logger.FieldRequestID] = id
		}

		switch {
		case status >= 500:
			log.Error("Request failed", fields)
		case status >= 400:
			log.Warn("Request error", fields)
		default:
			log.Info("Request completed", fields)
		}
	}
}

func isProbeEndpoint(path string) bool {
	switch path {
	case "/health", "/livez", "/readyz":
		return true
	}
	return false
}
