package domain

import (
	"github.com/yungbote/planbridge-backend/internal/domain/feedback"
	"github.com/yungbote/planbridge-backend/internal/domain/planning"
)

type FeedbackSurvey = feedback.FeedbackSurvey

type Sujet = planning.Sujet
type Action = planning.Action
type ActionType = planning.ActionType
type ActionStatus = planning.ActionStatus

const (
	ActionStatusOpen    = planning.ActionStatusOpen
	ActionStatusClosed  = planning.ActionStatusClosed
	ActionStatusBlocked = planning.ActionStatusBlocked

	ActionTypeAction         = planning.ActionTypeAction
	ActionTypeSousAction     = planning.ActionTypeSousAction
	ActionTypeSousSousAction = planning.ActionTypeSousSousAction
)

// Models lists every table owned by this service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Sujet{},
		&Action{},
		&FeedbackSurvey{},
	}
}
