// Package middleware carries the HTTP cross-cutting concerns of the game
// server: request identification, structured request logging, panic
// recovery and rate limiting.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestIDHeader carries the request id to and from the UI, so a log line
// can be matched to the UI action that triggered it.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a UUID (or adopts the one the UI sent)
// and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retrieves the request id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		return v.(string)
	}
	return ""
}

// RequestLogger logs one line per request with the request id attached.
// Paths in skip (the /health probe) are not logged at all; failed game
// operations come back as 4xx and are logged at warn so a scan of the log
// separates rejections from normal play.
func RequestLogger(log *zap.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", GetRequestID(c)),
		}
		if status >= 400 {
			log.Warn("http", fields...)
		} else {
			log.Info("http", fields...)
		}
	}
}
