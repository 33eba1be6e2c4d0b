package services

import (
	"context"
	"testing"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunFixture(t *testing.T) (*fakeAPI, *selection.Store, domain.TestRunService) {
	t.Helper()
	api := newFakeAPI()
	api.projects = []domain.BackendProject{{ID: "p1", Name: "Shop"}}
	api.testCases = []domain.BackendTestCase{{ID: "tc1", ProjectID: "p1"}, {ID: "tc2", ProjectID: "p1"}}
	api.testRuns = []domain.BackendTestRun{
		{ID: "r1", ProjectID: "p1", TestCaseID: "tc1", Status: domain.RunPassed},
		{ID: "r2", ProjectID: "p1", TestCaseID: "tc2", Status: domain.RunFailed},
		{ID: "r3", ProjectID: "p1", TestCaseID: "tc2", Status: domain.RunPassed},
	}
	store := selection.NewStore(newFakePrefs(), nil)
	_, err := store.Select(context.Background(), "p1", []domain.Project{{ID: "p1"}})
	require.NoError(t, err)
	return api, store, NewTestRunService(api, store, 10, nil, nil)
}

func TestTestRunService_Filters(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newTestRunFixture(t)

	tc := "tc2"
	st, err := svc.List(ctx, domain.ListParams{TestCase: &tc})
	require.NoError(t, err)
	assert.Len(t, st.Data, 2)

	status := "FAILED"
	st, err = svc.List(ctx, domain.ListParams{Status: &status})
	require.NoError(t, err)
	require.Len(t, st.Data, 1)
	assert.Equal(t, "r2", st.Data[0].ID)

	bogus := "exploded"
	_, err = svc.List(ctx, domain.ListParams{Status: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTestRunService_DeletedTestCaseFilterIsCleared(t *testing.T) {
	ctx := context.Background()
	api, store, svc := newTestRunFixture(t)

	gone := "tc-deleted"
	st, err := svc.List(ctx, domain.ListParams{TestCase: &gone})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, st.Status)
	assert.Empty(t, st.Error)
	assert.Len(t, st.Data, 3)
	assert.Equal(t, "p1", store.SelectedID())

	last := api.runQueries[len(api.runQueries)-1]
	assert.Equal(t, "", last.Filters.TestCaseID)
}

func TestTestRunService_StartPrependsRun(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newTestRunFixture(t)

	_, err := svc.List(ctx, domain.ListParams{})
	require.NoError(t, err)

	run, err := svc.Start(ctx, "tc1", domain.StartRunInput{BrowserConfigID: "bc1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RunPending, run.Status)

	st, err := svc.List(ctx, domain.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, run.ID, st.Data[0].ID)
	assert.Equal(t, 4, st.TotalCount)

	_, err = svc.Start(ctx, " ", domain.StartRunInput{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Start(ctx, "nope", domain.StartRunInput{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTestRunService_StartSkipsFilteredOutRun(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newTestRunFixture(t)

	failed := domain.RunFailed
	_, err := svc.List(ctx, domain.ListParams{Status: &failed})
	require.NoError(t, err)

	_, err = svc.Start(ctx, "tc1", domain.StartRunInput{})
	require.NoError(t, err)

	st, err := svc.List(ctx, domain.ListParams{})
	require.NoError(t, err)
	assert.Len(t, st.Data, 1)
}

func TestTestRunService_Get(t *testing.T) {
	_, _, svc := newTestRunFixture(t)
	run, err := svc.Get(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, run.Status)
}
