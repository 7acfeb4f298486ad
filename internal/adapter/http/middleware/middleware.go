package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"userapp/pkg/config"
)

const RequestIDHeader = "X-Request-ID"

// SetupGinMiddleware wires telemetry, request identification, logging,
// metrics and rate limiting in that order.
func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *config.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	if cfg.RateLimitEnabled {
		limiter := config.NewRateLimiter(logger.Logger.Logger, metrics)
		router.Use(limiter.RateLimitMiddleware())
	}
}

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)

		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

func LoggingMiddleware(logger *config.AppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Logger.Ctx(c.Request.Context()).Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("service", logger.ServiceName),
		)
	}
}

func MetricsMiddleware(metrics *config.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
