package planning

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

type ActionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Action) (*types.Action, error)
	// GetDepth returns the stored depth of an action, or nil when the row
	// does not exist.
	GetDepth(ctx context.Context, tx *gorm.DB, id int64) (*int, error)

	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Action, error)
	ListBySujetID(ctx context.Context, tx *gorm.DB, sujetID int64) ([]*types.Action, error)
}

type actionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionRepo(db *gorm.DB, baseLog *logger.Logger) ActionRepo {
	return &actionRepo{db: db, log: baseLog.With("repo", "ActionRepo")}
}

func (r *actionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Action) (*types.Action, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, fmt.Errorf("create action: nil row")
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	if row.Status == "" {
		row.Status = types.ActionStatusOpen
	}
	if err := t.WithContext(ctx).Omit("Sujet", "ParentAction").Create(row).Error; err != nil {
		return nil, fmt.Errorf("create action %q: %w", row.Title, err)
	}
	return row, nil
}

func (r *actionRepo) GetDepth(ctx context.Context, tx *gorm.DB, id int64) (*int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []struct {
		Depth *int
	}
	if err := t.WithContext(ctx).
		Model(&types.Action{}).
		Select("depth").
		Where("id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get depth of action %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Depth, nil
}

func (r *actionRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Action, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Action
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *actionRepo) ListBySujetID(ctx context.Context, tx *gorm.DB, sujetID int64) ([]*types.Action, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Action
	if err := t.WithContext(ctx).
		Where("sujet_id = ?", sujetID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
