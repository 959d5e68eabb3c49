package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/db"
	"github.com/yungbote/planbridge-backend/internal/data/repos"
	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/domain/planning"
	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type PlanService interface {
	// Ingest validates the plan and writes its whole sujet/action tree in one
	// transaction, returning the root sujet id. Errors are *apierr.Error.
	Ingest(ctx context.Context, in *PlanInput) (int64, error)
}

type planService struct {
	db         *gorm.DB
	log        *logger.Logger
	sujetRepo  repos.SujetRepo
	actionRepo repos.ActionRepo
	metrics    *observability.Metrics
}

func NewPlanService(db *gorm.DB, log *logger.Logger, sujetRepo repos.SujetRepo, actionRepo repos.ActionRepo, metrics *observability.Metrics) PlanService {
	return &planService{
		db:         db,
		log:        log.With("service", "PlanService"),
		sujetRepo:  sujetRepo,
		actionRepo: actionRepo,
		metrics:    metrics,
	}
}

// ingestCounts tracks rows touched by one plan for metrics and logs.
type ingestCounts struct {
	sujets  int
	actions int
}

func (ps *planService) Ingest(ctx context.Context, in *PlanInput) (int64, error) {
	if err := ValidatePlan(in); err != nil {
		ps.metrics.IncPlan("invalid")
		return 0, apierr.Validation(err)
	}
	ApplyDefaults(in)

	var rootID int64
	var counts ingestCounts
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counts = ingestCounts{}
		id, err := ps.sujetRepo.Upsert(ctx, tx, repos.SujetUpsert{
			Title: in.PlanTitle,
			Code:  normalizeCode(in.PlanCode),
		})
		if err != nil {
			return fmt.Errorf("upsert plan root: %w", err)
		}
		counts.sujets++
		for i := range in.Sujets {
			if _, err := ps.ingestSujet(ctx, tx, &id, &in.Sujets[i], &counts); err != nil {
				return err
			}
		}
		rootID = id
		return nil
	})
	if err != nil {
		return 0, ps.classify(err)
	}

	ps.metrics.IncPlan("ok")
	ps.metrics.AddPlanNodes("sujet", counts.sujets)
	ps.metrics.AddPlanNodes("action", counts.actions)
	ps.log.Info("plan ingested",
		"root_sujet_id", rootID,
		"sujets", counts.sujets,
		"actions", counts.actions,
	)
	return rootID, nil
}

// ingestSujet upserts one sujet under parentID, inserts its actions, then
// recurses into its child sujets.
func (ps *planService) ingestSujet(ctx context.Context, tx *gorm.DB, parentID *int64, s *SujetInput, counts *ingestCounts) (int64, error) {
	id, err := ps.sujetRepo.Upsert(ctx, tx, repos.SujetUpsert{
		Title:       s.Title,
		ParentID:    parentID,
		Code:        normalizeCode(s.Code),
		Description: s.Description,
	})
	if err != nil {
		return 0, fmt.Errorf("upsert sujet %q: %w", s.Title, err)
	}
	counts.sujets++

	for i := range s.Actions {
		if _, err := ps.insertAction(ctx, tx, id, nil, &s.Actions[i], counts); err != nil {
			return 0, err
		}
	}
	for i := range s.Sujets {
		if _, err := ps.ingestSujet(ctx, tx, &id, &s.Sujets[i], counts); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// insertAction writes one action and its sub-actions, returning the id of
// the action it was given.
func (ps *planService) insertAction(ctx context.Context, tx *gorm.DB, sujetID int64, parentID *int64, a *ActionInput, counts *ingestCounts) (int64, error) {
	level, err := ps.actionLevel(ctx, tx, parentID)
	if err != nil {
		return 0, err
	}

	row := &types.Action{
		SujetID:        sujetID,
		ParentActionID: parentID,
		Type:           planning.ActionTypeForLevel(level),
		Title:          a.Title,
		Description:    a.Description,
		Owner:          a.Owner,
		Priority:       a.Priority,
	}
	if a.Status != nil {
		row.Status = types.ActionStatus(*a.Status)
		if !row.Status.Valid() {
			return 0, apierr.Validation(&ValidationError{Path: "status", Reason: "must be one of: open, closed, blocked"})
		}
	}
	if a.DueDate != nil && *a.DueDate != "" {
		due, err := time.Parse(planning.DueDateLayout, *a.DueDate)
		if err != nil {
			return 0, apierr.Validation(&ValidationError{Path: "due_date", Reason: "must be a date formatted YYYY-MM-DD"})
		}
		d := datatypes.Date(due)
		row.DueDate = &d
	}

	created, err := ps.actionRepo.Create(ctx, tx, row)
	if err != nil {
		return 0, err
	}
	counts.actions++

	for i := range a.Actions {
		if _, err := ps.insertAction(ctx, tx, sujetID, &created.ID, &a.Actions[i], counts); err != nil {
			return 0, err
		}
	}
	return created.ID, nil
}

// actionLevel is 0 for a root action, otherwise the parent's stored depth
// plus one, capped at MaxActionLevel. A parent with no stored depth counts
// as level 1.
func (ps *planService) actionLevel(ctx context.Context, tx *gorm.DB, parentID *int64) (int, error) {
	if parentID == nil {
		return 0, nil
	}
	depth, err := ps.actionRepo.GetDepth(ctx, tx, *parentID)
	if err != nil {
		return 0, err
	}
	if depth == nil {
		return 1, nil
	}
	level := *depth + 1
	if level > planning.MaxActionLevel {
		level = planning.MaxActionLevel
	}
	return level, nil
}

func (ps *planService) classify(err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		ps.metrics.IncPlan("invalid")
		return ae
	}
	if db.IsIntegrityViolation(ps.db.Dialector, err) {
		ps.metrics.IncPlan("conflict")
		ps.log.Warn("plan rejected by integrity constraint", "error", err)
		return apierr.Conflict(err)
	}
	ps.metrics.IncPlan("error")
	ps.log.Error("plan ingestion failed", "error", err)
	return apierr.Internal(err)
}
