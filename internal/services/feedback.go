package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/repos"
	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/domain/feedback"
	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type FeedbackService interface {
	// Ingest validates payload and stores it as one feedback_survey row.
	// Errors are *apierr.Error.
	Ingest(ctx context.Context, payload map[string]any) (int64, error)
}

type feedbackService struct {
	db      *gorm.DB
	log     *logger.Logger
	repo    repos.FeedbackSurveyRepo
	metrics *observability.Metrics
	now     func() time.Time
}

func NewFeedbackService(db *gorm.DB, log *logger.Logger, repo repos.FeedbackSurveyRepo, metrics *observability.Metrics) FeedbackService {
	return &feedbackService{
		db:      db,
		log:     log.With("service", "FeedbackService"),
		repo:    repo,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *feedbackService) Ingest(ctx context.Context, payload map[string]any) (int64, error) {
	if err := ValidateFeedbackPayload(payload); err != nil {
		s.metrics.IncFeedback("invalid")
		return 0, apierr.Validation(err)
	}

	row := &types.FeedbackSurvey{
		SalesPersonText: payload["sales_person_text"].(string),
	}
	day, err := s.feedbackDate(payload["date"])
	if err != nil {
		s.metrics.IncFeedback("invalid")
		return 0, apierr.Validation(err)
	}
	row.Date = datatypes.Date(day)

	for _, k := range feedback.Sections {
		raw, err := encodeSection(payload[k])
		if err != nil {
			s.metrics.IncFeedback("error")
			return 0, apierr.Internal(fmt.Errorf("encode section %s: %w", k, err))
		}
		row.SetSection(k, raw)
	}

	// No transaction: a single INSERT autocommits.
	created, err := s.repo.Create(ctx, nil, row)
	if err != nil {
		s.metrics.IncFeedback("error")
		s.log.Error("feedback insert failed", "error", err)
		return 0, apierr.Internal(err)
	}
	s.metrics.IncFeedback("ok")
	s.log.Debug("feedback saved", "id", created.ID)
	return created.ID, nil
}

func (s *feedbackService) feedbackDate(raw any) (time.Time, error) {
	if str, ok := raw.(string); ok && str != "" {
		t, err := time.Parse(feedback.DateLayout, str)
		if err != nil {
			return time.Time{}, ErrInvalidDateFormat
		}
		return t, nil
	}
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

// encodeSection serializes one section without HTML escaping so non-ASCII
// and <, >, & are stored verbatim.
func encodeSection(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
