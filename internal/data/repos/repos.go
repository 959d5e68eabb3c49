package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/repos/feedback"
	"github.com/yungbote/planbridge-backend/internal/data/repos/planning"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type FeedbackSurveyRepo = feedback.FeedbackSurveyRepo

type SujetRepo = planning.SujetRepo
type SujetUpsert = planning.SujetUpsert
type ActionRepo = planning.ActionRepo

func NewFeedbackSurveyRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackSurveyRepo {
	return feedback.NewFeedbackSurveyRepo(db, baseLog)
}

func NewSujetRepo(db *gorm.DB, baseLog *logger.Logger) SujetRepo {
	return planning.NewSujetRepo(db, baseLog)
}

func NewActionRepo(db *gorm.DB, baseLog *logger.Logger) ActionRepo {
	return planning.NewActionRepo(db, baseLog)
}
