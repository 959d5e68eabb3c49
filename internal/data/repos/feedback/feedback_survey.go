package feedback

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type FeedbackSurveyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.FeedbackSurvey) (*types.FeedbackSurvey, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.FeedbackSurvey, error)
}

type feedbackSurveyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackSurveyRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackSurveyRepo {
	return &feedbackSurveyRepo{db: db, log: baseLog.With("repo", "FeedbackSurveyRepo")}
}

// Create issues a single INSERT ... RETURNING id; it runs in autocommit
// unless tx is a transaction.
func (r *feedbackSurveyRepo) Create(ctx context.Context, tx *gorm.DB, row *types.FeedbackSurvey) (*types.FeedbackSurvey, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, fmt.Errorf("create feedback survey: nil row")
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create feedback survey: %w", err)
	}
	return row, nil
}

func (r *feedbackSurveyRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.FeedbackSurvey, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.FeedbackSurvey
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
