package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
	"github.com/yungbote/planbridge-backend/internal/services"
)

type Services struct {
	Feedback services.FeedbackService
	Plan     services.PlanService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		Feedback: services.NewFeedbackService(db, log, reposet.FeedbackSurvey, metrics),
		Plan:     services.NewPlanService(db, log, reposet.Sujet, reposet.Action, metrics),
	}
}
