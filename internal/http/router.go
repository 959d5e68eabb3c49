package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/planbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/planbridge-backend/internal/http/middleware"
	"github.com/yungbote/planbridge-backend/internal/http/response"
	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	CORSAllowOrigins []string
	MaxBodyBytes     int64
	TracingEnabled   bool
	ServiceName      string

	FeedbackHandler *httpH.FeedbackHandler
	PlanHandler     *httpH.PlanHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if cfg.Log != nil {
			cfg.Log.Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		}
		response.RespondCodedError(c, http.StatusInternalServerError, apierr.CodeInternal, "internal server error")
	}))
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
		r.GET("/healthz/db", cfg.HealthHandler.DBCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.BodyLimit(cfg.MaxBodyBytes))
	{
		if cfg.FeedbackHandler != nil {
			api.POST("/feedback", cfg.FeedbackHandler.Create)
		}
		if cfg.PlanHandler != nil {
			api.POST("/plans", cfg.PlanHandler.Create)
			api.GET("/schema", cfg.PlanHandler.Schema)
		}
	}

	return r
}
