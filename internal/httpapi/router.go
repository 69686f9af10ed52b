package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/yungtweek/llm-mockserver/internal/config"
	"github.com/yungtweek/llm-mockserver/internal/metrics"
)

// NewRouter builds the engine for one mock service. register mounts the
// service's mock routes; they run behind the simulated latency middleware,
// while /healthz and /metrics always answer immediately.
func NewRouter(cfg config.Config, m *metrics.HTTP, register func(gin.IRoutes)) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery(), RequestID(), AccessLog())
	if m != nil {
		r.Use(Instrument(m))
	}

	r.NoRoute(notFound)
	r.NoMethod(methodNotAllowed)

	r.GET("/healthz", healthz)
	if cfg.MetricsEnabled && m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	register(r.Group("", Latency(cfg.BaseDelayMs, cfg.JitterMs)))
	return r
}
