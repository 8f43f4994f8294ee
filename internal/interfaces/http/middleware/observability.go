// Package middleware holds the gin middleware shared by all routes.
package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/pkg/constants"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// RequestIDHeader is the correlation header honored and returned by the API.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation ID, reusing the caller's
// header value when present. The ID rides the request context so the logger
// picks it up on every call.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Observability logs each completed request and records the HTTP metrics.
func Observability(log logger.Logger, metrics *monitoring.Metrics) gin.HandlerFunc {
	accessLog := log.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(status), elapsed)

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", status),
			logger.Int64("latency_ms", elapsed.Milliseconds()),
			logger.String("client_ip", c.ClientIP()),
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			accessLog.Error(ctx, "request failed", nil, fields...)
		case status >= 400:
			accessLog.Warn(ctx, "request rejected", fields...)
		default:
			accessLog.Info(ctx, "request completed", fields...)
		}
	}
}
