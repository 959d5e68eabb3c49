package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/db"
	httpH "github.com/yungbote/planbridge-backend/internal/http/handlers"
	"github.com/yungbote/planbridge-backend/internal/http/response"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Feedback *httpH.FeedbackHandler
	Plan     *httpH.PlanHandler
}

func wireHandlers(log *logger.Logger, cfg Config, gdb *gorm.DB, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	opts := response.Options{ExposeErrorDetail: cfg.ExposeErrorDetail}
	return Handlers{
		Health: httpH.NewHealthHandler(func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		}),
		Feedback: httpH.NewFeedbackHandler(serviceset.Feedback, opts),
		Plan:     httpH.NewPlanHandler(serviceset.Plan, opts),
	}
}
