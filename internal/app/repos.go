package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/repos"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type Repos struct {
	FeedbackSurvey repos.FeedbackSurveyRepo
	Sujet          repos.SujetRepo
	Action         repos.ActionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		FeedbackSurvey: repos.NewFeedbackSurveyRepo(db, log),
		Sujet:          repos.NewSujetRepo(db, log),
		Action:         repos.NewActionRepo(db, log),
	}
}
