package app

import (
	"github.com/gin-gonic/gin"

	server "github.com/yungbote/planbridge-backend/internal/http"
	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) server.RouterConfig {
	return server.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		TracingEnabled:   cfg.Otel.Enabled,
		ServiceName:      cfg.Otel.ServiceName,
		FeedbackHandler:  handlers.Feedback,
		PlanHandler:      handlers.Plan,
		HealthHandler:    handlers.Health,
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *server.Server {
	gin.SetMode(cfg.GinMode)
	return server.NewServer(routerConfig(log, cfg, handlers, metrics))
}
