package feedback

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/planbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/planbridge-backend/internal/domain"
)

func TestFeedbackSurveyRepoCreate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewFeedbackSurveyRepo(db, testutil.Logger(t))

	day := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	row := &types.FeedbackSurvey{
		SalesPersonText: "Alice",
		Date:            datatypes.Date(day),
	}
	for _, k := range []string{
		"table_structure_and_layout",
		"usability_and_data_handling",
		"speed_and_performance",
		"data_relevance_and_sts_support",
		"suggestions_and_needs",
		"overall_satisfaction_and_impact",
	} {
		row.SetSection(k, []byte(`{"score":4}`))
	}

	created, err := repo.Create(ctx, nil, row)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.SalesPersonText != "Alice" {
		t.Fatalf("sales_person_text: %q", got.SalesPersonText)
	}
	if string(got.OverallSatisfactionAndImpact) != `{"score":4}` {
		t.Fatalf("section round trip: %s", got.OverallSatisfactionAndImpact)
	}
	if y, m, d := time.Time(got.Date).Date(); y != 2025 || m != time.November || d != 15 {
		t.Fatalf("date: %v", time.Time(got.Date))
	}
}

func TestFeedbackSurveyRepoRejectsMissingSections(t *testing.T) {
	db := testutil.DB(t)
	repo := NewFeedbackSurveyRepo(db, testutil.Logger(t))

	_, err := repo.Create(context.Background(), nil, &types.FeedbackSurvey{
		SalesPersonText: "Bob",
		Date:            datatypes.Date(time.Now().UTC()),
	})
	if err == nil {
		t.Fatal("expected not-null violation for empty sections")
	}
}
