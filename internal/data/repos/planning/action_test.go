package planning

import (
	"context"
	"testing"

	"github.com/yungbote/planbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/planbridge-backend/internal/domain"
)

func TestActionRepoDepthIsMaintainedByTrigger(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActionRepo(db, testutil.Logger(t))

	s := testutil.SeedSujet(t, ctx, tx, nil, "s")

	parentID := (*int64)(nil)
	var ids []int64
	for i := 0; i < 4; i++ {
		row, err := repo.Create(ctx, tx, &types.Action{
			SujetID:        s.ID,
			ParentActionID: parentID,
			Type:           types.ActionTypeAction,
			Title:          "a",
		})
		if err != nil {
			t.Fatalf("Create level %d: %v", i, err)
		}
		ids = append(ids, row.ID)
		parentID = testutil.PtrInt64(row.ID)
	}

	for want, id := range ids {
		depth, err := repo.GetDepth(ctx, tx, id)
		if err != nil {
			t.Fatalf("GetDepth(%d): %v", id, err)
		}
		if depth == nil || *depth != want {
			t.Fatalf("depth of level %d: got=%v want=%d", want, depth, want)
		}
	}

	if depth, err := repo.GetDepth(ctx, tx, 424242); err != nil || depth != nil {
		t.Fatalf("GetDepth(missing): depth=%v err=%v", depth, err)
	}
}

func TestActionRepoCreateDefaultsStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActionRepo(db, testutil.Logger(t))

	s := testutil.SeedSujet(t, ctx, tx, nil, "s")
	row, err := repo.Create(ctx, tx, &types.Action{SujetID: s.ID, Type: types.ActionTypeAction, Title: "t"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, row.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.Status != types.ActionStatusOpen {
		t.Fatalf("status: got=%q want=open", got.Status)
	}
	if got.Ordre != nil {
		t.Fatalf("ordre should be left null, got %d", *got.Ordre)
	}

	rows, err := repo.ListBySujetID(ctx, tx, s.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListBySujetID: err=%v len=%d", err, len(rows))
	}
}

func TestActionRepoRejectsUnknownStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewActionRepo(db, testutil.Logger(t))

	s := testutil.SeedSujet(t, ctx, tx, nil, "s")
	_, err := repo.Create(ctx, tx, &types.Action{
		SujetID: s.ID,
		Type:    types.ActionTypeAction,
		Title:   "t",
		Status:  types.ActionStatus("archived"),
	})
	if err == nil {
		t.Fatal("expected check constraint violation")
	}
}
