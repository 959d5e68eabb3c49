package planning

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

// SujetUpsert identifies a sujet either by Code or, when Code is nil, by
// (ParentID, Title).
type SujetUpsert struct {
	Title       string
	ParentID    *int64
	Code        *string
	Description *string
}

type SujetRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, in SujetUpsert) (int64, error)

	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Sujet, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Sujet, error)
	FindByParentAndTitle(ctx context.Context, tx *gorm.DB, parentID *int64, title string) (*types.Sujet, error)
	ListByParentID(ctx context.Context, tx *gorm.DB, parentID *int64) ([]*types.Sujet, error)
}

type sujetRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewSujetRepo(db *gorm.DB, baseLog *logger.Logger) SujetRepo {
	return &sujetRepo{
		db:  db,
		log: baseLog.With("repo", "SujetRepo"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *sujetRepo) Upsert(ctx context.Context, tx *gorm.DB, in SujetUpsert) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if in.Code != nil {
		return r.upsertByCode(ctx, t, in)
	}
	return r.upsertByParentAndTitle(ctx, t, in)
}

// upsertByCode is a single statement; the unique index on code arbitrates
// concurrent writers.
func (r *sujetRepo) upsertByCode(ctx context.Context, t *gorm.DB, in SujetUpsert) (int64, error) {
	now := r.now()
	var id int64
	res := t.WithContext(ctx).Raw(`
		INSERT INTO sujet (code, title, description, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			parent_id = excluded.parent_id,
			updated_at = excluded.updated_at
		RETURNING id
	`, *in.Code, in.Title, in.Description, in.ParentID, now, now).Scan(&id)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert sujet by code %q: %w", *in.Code, res.Error)
	}
	if id == 0 {
		return 0, fmt.Errorf("upsert sujet by code %q: no id returned", *in.Code)
	}
	return id, nil
}

// upsertByParentAndTitle reads first and inserts on a miss. The insert uses
// ON CONFLICT DO NOTHING against ux_sujet_parent_title_nocode, so a writer
// that loses a race re-reads the winner's row instead of duplicating it.
func (r *sujetRepo) upsertByParentAndTitle(ctx context.Context, t *gorm.DB, in SujetUpsert) (int64, error) {
	existing, err := r.FindByParentAndTitle(ctx, t, in.ParentID, in.Title)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, r.touch(ctx, t, existing.ID, in.Description)
	}

	now := r.now()
	var id int64
	res := t.WithContext(ctx).Raw(`
		INSERT INTO sujet (code, title, description, parent_id, created_at, updated_at)
		VALUES (NULL, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
		RETURNING id
	`, in.Title, in.Description, in.ParentID, now, now).Scan(&id)
	if res.Error != nil {
		return 0, fmt.Errorf("insert sujet %q: %w", in.Title, res.Error)
	}
	if id != 0 {
		return id, nil
	}

	r.log.Debug("sujet insert lost race, re-reading", "title", in.Title)
	existing, err = r.FindByParentAndTitle(ctx, t, in.ParentID, in.Title)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, fmt.Errorf("insert sujet %q: conflicting row not visible", in.Title)
	}
	return existing.ID, r.touch(ctx, t, existing.ID, in.Description)
}

func (r *sujetRepo) touch(ctx context.Context, t *gorm.DB, id int64, description *string) error {
	err := t.WithContext(ctx).
		Model(&types.Sujet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"description": description,
			"updated_at":  r.now(),
		}).Error
	if err != nil {
		return fmt.Errorf("update sujet %d: %w", id, err)
	}
	return nil
}

func (r *sujetRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Sujet, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var out []*types.Sujet
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sujetRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Sujet, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if code == "" {
		return nil, nil
	}
	var out []*types.Sujet
	if err := t.WithContext(ctx).Where("code = ?", code).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// FindByParentAndTitle matches code-less rows only. A nil parentID means
// "root", not a wildcard.
func (r *sujetRepo) FindByParentAndTitle(ctx context.Context, tx *gorm.DB, parentID *int64, title string) (*types.Sujet, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Where("title = ? AND code IS NULL", title)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var out []*types.Sujet
	if err := q.Order("id ASC").Limit(1).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find sujet %q: %w", title, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sujetRepo) ListByParentID(ctx context.Context, tx *gorm.DB, parentID *int64) ([]*types.Sujet, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var out []*types.Sujet
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
