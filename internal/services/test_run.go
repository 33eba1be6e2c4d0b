package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/metrics"
	"bugninjaplatform/internal/paginate"
	"bugninjaplatform/internal/selection"
	"bugninjaplatform/internal/transform"
)

type testRunService struct {
	api   domain.BugninjaAPI
	store *selection.Store
	list  *paginate.Paginator[domain.TestRun, domain.TestRunFilters]
}

// NewTestRunService scopes the test run list to the selected project. A test
// case filter that 404s is dropped and the list refetched.
func NewTestRunService(api domain.BugninjaAPI,
	store *selection.Store,
	pageSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.TestRunService {
	s := &testRunService{api: api, store: store}
	s.list = paginate.New(paginate.Config[domain.TestRun, domain.TestRunFilters]{
		Resource:      "test_runs",
		Fetch:         pageFetcher(api.ListTestRuns, transform.TestRun),
		PageSize:      pageSize,
		RequireParent: true,
		ParentID:      store.SelectedID(),
		ClearChild:    clearTestCaseFilter,
		OnParentGone:  store.Forget,
		Metrics:       m,
		Logger:        logger,
	})
	store.Subscribe(func(ctx context.Context, projectID string) {
		s.list.SetParent(ctx, projectID)
	})
	return s
}

func clearTestCaseFilter(f *domain.TestRunFilters) bool {
	if f.TestCaseID == "" {
		return false
	}
	f.TestCaseID = ""
	return true
}

var runStatuses = []string{
	domain.RunPending, domain.RunRunning, domain.RunPassed, domain.RunFailed, domain.RunCancelled,
}

func (s *testRunService) List(ctx context.Context, params domain.ListParams) (domain.ListState[domain.TestRun], error) {
	if err := validateParams(params); err != nil {
		return domain.ListState[domain.TestRun]{}, err
	}
	if params.Status != nil {
		status := strings.ToLower(*params.Status)
		params.Status = &status
	}
	if err := validateOneOf("status", params.Status, runStatuses...); err != nil {
		return domain.ListState[domain.TestRun]{}, err
	}
	return listState(ctx, s.list, params, func(f *domain.TestRunFilters) {
		setString(&f.Status, params.Status)
		setString(&f.TestCaseID, params.TestCase)
	}), nil
}

func (s *testRunService) Get(ctx context.Context, testRunID string) (*domain.TestRun, error) {
	raw, err := s.api.GetTestRun(ctx, testRunID)
	if err != nil {
		return nil, err
	}
	run := transform.TestRun(*raw)
	return &run, nil
}

// Start launches a run of testCaseID. The new run is prepended when the
// current filters would include it.
func (s *testRunService) Start(ctx context.Context, testCaseID string, in domain.StartRunInput) (*domain.TestRun, error) {
	if strings.TrimSpace(testCaseID) == "" {
		return nil, fmt.Errorf("%w: test case id is required", domain.ErrInvalidInput)
	}
	raw, err := s.api.StartTestRun(ctx, domain.BackendStartRunInput{
		TestCaseID:      testCaseID,
		BrowserConfigID: in.BrowserConfigID,
	})
	if err != nil {
		return nil, err
	}
	run := transform.TestRun(*raw)

	f := s.list.Query().Filters
	if (f.TestCaseID == "" || f.TestCaseID == run.TestCaseID) && (f.Status == "" || f.Status == run.Status) {
		s.list.Mutate(prepend(run))
	}
	return &run, nil
}
