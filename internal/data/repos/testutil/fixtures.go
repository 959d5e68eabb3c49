package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/planbridge-backend/internal/domain"
)

func SeedSujet(tb testing.TB, ctx context.Context, tx *gorm.DB, parentID *int64, title string) *types.Sujet {
	tb.Helper()
	now := time.Now().UTC()
	s := &types.Sujet{
		Title:     title,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Omit("Parent").Create(s).Error; err != nil {
		tb.Fatalf("seed sujet: %v", err)
	}
	return s
}

func CountRows(tb testing.TB, ctx context.Context, tx *gorm.DB, model interface{}) int64 {
	tb.Helper()
	var n int64
	if err := tx.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count rows: %v", err)
	}
	return n
}

func PtrInt64(v int64) *int64 { return &v }

func PtrString(v string) *string { return &v }

func PtrInt(v int) *int { return &v }
