package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/data/repos"
	"github.com/yungbote/planbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/planbridge-backend/internal/domain"
	"github.com/yungbote/planbridge-backend/internal/observability"
	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
)

type planFixture struct {
	db      *gorm.DB
	sujets  repos.SujetRepo
	actions repos.ActionRepo
	svc     PlanService
	metrics *observability.Metrics
}

func newPlanFixture(t *testing.T, wrap func(repos.ActionRepo) repos.ActionRepo) *planFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	f := &planFixture{
		db:      db,
		sujets:  repos.NewSujetRepo(db, log),
		actions: repos.NewActionRepo(db, log),
		metrics: observability.NewMetrics(),
	}
	actions := f.actions
	if wrap != nil {
		actions = wrap(actions)
	}
	f.svc = NewPlanService(db, log, f.sujets, actions, f.metrics)
	return f
}

func decodePlanString(t *testing.T, raw string) *PlanInput {
	t.Helper()
	in, err := DecodePlan(strings.NewReader(raw))
	require.NoError(t, err)
	return in
}

// failingActionRepo fails the Nth Create call.
type failingActionRepo struct {
	repos.ActionRepo
	failOn int
	calls  int
	err    error
}

func (r *failingActionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Action) (*types.Action, error) {
	r.calls++
	if r.calls == r.failOn {
		return nil, r.err
	}
	return r.ActionRepo.Create(ctx, tx, row)
}

func TestPlanIngestSamePlanCodeResolvesToSameRoot(t *testing.T) {
	f := newPlanFixture(t, nil)
	ctx := context.Background()
	raw := `{"version":"1.0","plan_code":"P-1","plan_title":"Plan","sujets":[{"code":"S-1","title":"s"}]}`

	first, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)
	second, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	root, err := f.sujets.GetByCode(ctx, nil, "P-1")
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, first, root.ID)
	assert.Equal(t, int64(2), testutil.CountRows(t, ctx, f.db, &types.Sujet{}))
}

func TestPlanIngestCodelessSujetsConvergeSequentially(t *testing.T) {
	f := newPlanFixture(t, nil)
	ctx := context.Background()
	raw := `{"version":"1.0","plan_title":"No code plan","sujets":[{"title":"same"},{"title":"same"}]}`

	first, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)
	second, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)
	assert.Equal(t, first, second, "root without code converges on title")

	children, err := f.sujets.ListByParentID(ctx, nil, &first)
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestPlanIngestActionTypesFollowDepth(t *testing.T) {
	f := newPlanFixture(t, nil)
	ctx := context.Background()
	raw := `{
		"version": "1.0",
		"plan_title": "Depth",
		"sujets": [{
			"code": "S-D",
			"title": "s",
			"actions": [{
				"title": "a0",
				"actions": [{
					"title": "a1",
					"actions": [{
						"title": "a2",
						"actions": [{"title": "a3", "status": "blocked"}]
					}]
				}]
			}]
		}]
	}`
	_, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)

	s, err := f.sujets.GetByCode(ctx, nil, "S-D")
	require.NoError(t, err)
	require.NotNil(t, s)
	rows, err := f.actions.ListBySujetID(ctx, nil, s.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	wantTypes := []types.ActionType{
		types.ActionTypeAction,
		types.ActionTypeSousAction,
		types.ActionTypeSousSousAction,
		types.ActionTypeSousSousAction,
	}
	for i, row := range rows {
		assert.Equal(t, wantTypes[i], row.Type, "action %s", row.Title)
		assert.Equal(t, i, row.Depth, "depth of %s", row.Title)
		assert.Nil(t, row.Ordre)
	}
	assert.Equal(t, types.ActionStatusOpen, rows[0].Status)
	assert.Equal(t, types.ActionStatusBlocked, rows[3].Status)
	assert.Nil(t, rows[0].ParentActionID)
	for i := 1; i < len(rows); i++ {
		require.NotNil(t, rows[i].ParentActionID)
		assert.Equal(t, rows[i-1].ID, *rows[i].ParentActionID)
	}
}

func TestPlanIngestRejectsWrongVersionBeforeWriting(t *testing.T) {
	f := newPlanFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Ingest(ctx, decodePlanString(t, `{"version":"2.0","plan_title":"p","sujets":[{"title":"s"}]}`))
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, apierr.CodeValidation, ae.Code)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "version", ve.Path)

	assert.Zero(t, testutil.CountRows(t, ctx, f.db, &types.Sujet{}))
	assert.Zero(t, testutil.CountRows(t, ctx, f.db, &types.Action{}))
}

func TestPlanIngestRollsBackOnFailure(t *testing.T) {
	failing := &failingActionRepo{failOn: 3, err: errors.New("disk on fire")}
	f := newPlanFixture(t, func(r repos.ActionRepo) repos.ActionRepo {
		failing.ActionRepo = r
		return failing
	})
	ctx := context.Background()
	raw := `{
		"version": "1.0",
		"plan_code": "P-RB",
		"plan_title": "Rollback",
		"sujets": [
			{"title": "s1", "actions": [{"title": "a1"}, {"title": "a2"}]},
			{"title": "s2", "sujets": [{"title": "s3", "actions": [{"title": "a3"}]}]}
		]
	}`

	_, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.From(err).Status)
	assert.Equal(t, 3, failing.calls)

	assert.Zero(t, testutil.CountRows(t, ctx, f.db, &types.Sujet{}))
	assert.Zero(t, testutil.CountRows(t, ctx, f.db, &types.Action{}))
}

func TestPlanIngestIntegrityViolationIsConflict(t *testing.T) {
	failing := &failingActionRepo{failOn: 1, err: gorm.ErrDuplicatedKey}
	f := newPlanFixture(t, func(r repos.ActionRepo) repos.ActionRepo {
		failing.ActionRepo = r
		return failing
	})
	ctx := context.Background()

	_, err := f.svc.Ingest(ctx, decodePlanString(t, `{"version":"1.0","plan_title":"p","sujets":[{"title":"s","actions":[{"title":"a"}]}]}`))
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, apierr.CodeConflict, ae.Code)
	assert.Zero(t, testutil.CountRows(t, ctx, f.db, &types.Sujet{}))
}

func TestPlanIngestStoresActionFields(t *testing.T) {
	f := newPlanFixture(t, nil)
	ctx := context.Background()
	raw := `{"version":"1.0","plan_title":"p","sujets":[{"code":"S-F","title":"s","description":"d",
		"actions":[{"title":"a","owner":"alice","priority":0,"due_date":"2025-12-01","status":"closed","description":"x"}]}]}`

	_, err := f.svc.Ingest(ctx, decodePlanString(t, raw))
	require.NoError(t, err)

	s, err := f.sujets.GetByCode(ctx, nil, "S-F")
	require.NoError(t, err)
	require.NotNil(t, s.Description)
	assert.Equal(t, "d", *s.Description)

	rows, err := f.actions.ListBySujetID(ctx, nil, s.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	a := rows[0]
	require.NotNil(t, a.Owner)
	assert.Equal(t, "alice", *a.Owner)
	require.NotNil(t, a.Priority)
	assert.Equal(t, 0, *a.Priority)
	require.NotNil(t, a.DueDate)
	assert.Equal(t, types.ActionStatusClosed, a.Status)
}
