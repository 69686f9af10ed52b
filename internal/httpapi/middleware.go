package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungtweek/llm-mockserver/internal/logger"
	"github.com/yungtweek/llm-mockserver/internal/metrics"
	"github.com/yungtweek/llm-mockserver/internal/mock"
)

const (
	HeaderRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"

	// nginx convention for a client that went away before the response.
	statusClientClosedRequest = 499
)

// RequestID propagates X-Request-Id, minting one when the caller sent none.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"route", routeOf(c),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latencyMs", time.Since(start).Milliseconds(),
			"requestId", c.GetString(ctxRequestID),
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Log.Errorw("[http] request", fields...)
		case c.Writer.Status() >= 400:
			logger.Log.Warnw("[http] request", fields...)
		default:
			logger.Log.Infow("[http] request", fields...)
		}
	}
}

// Instrument records request counts and durations into m.
func Instrument(m *metrics.HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeOf(c)
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Latency holds the request for base plus up to jitter milliseconds before the
// handler runs. A request whose client disconnects during the wait is aborted.
func Latency(baseMs, jitterMs int) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := mock.Delay(baseMs, jitterMs)
		if d <= 0 {
			c.Next()
			return
		}
		if err := mock.SleepWithContext(c.Request.Context(), d); err != nil {
			logger.Log.Infow("[http] client gone during simulated latency", "delayMs", d.Milliseconds(), "err", err)
			c.AbortWithStatus(statusClientClosedRequest)
			return
		}
		c.Next()
	}
}
