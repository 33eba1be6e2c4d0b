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

type testCaseService struct {
	api   domain.BugninjaAPI
	store *selection.Store
	list  *paginate.Paginator[domain.TestCase, domain.TestCaseFilters]
}

// NewTestCaseService scopes the test case list to the selected project and
// follows selection changes.
func NewTestCaseService(api domain.BugninjaAPI,
	store *selection.Store,
	pageSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.TestCaseService {
	s := &testCaseService{api: api, store: store}
	s.list = paginate.New(paginate.Config[domain.TestCase, domain.TestCaseFilters]{
		Resource:      "test_cases",
		Fetch:         pageFetcher(api.ListTestCases, transform.TestCase),
		PageSize:      pageSize,
		RequireParent: true,
		ParentID:      store.SelectedID(),
		OnParentGone:  store.Forget,
		Metrics:       m,
		Logger:        logger,
	})
	store.Subscribe(func(ctx context.Context, projectID string) {
		s.list.SetParent(ctx, projectID)
	})
	return s
}

func (s *testCaseService) List(ctx context.Context, params domain.ListParams) (domain.ListState[domain.TestCase], error) {
	if err := validateParams(params); err != nil {
		return domain.ListState[domain.TestCase]{}, err
	}
	if err := validateOneOf("priority", params.Priority,
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical); err != nil {
		return domain.ListState[domain.TestCase]{}, err
	}
	return listState(ctx, s.list, params, func(f *domain.TestCaseFilters) {
		setString(&f.Priority, params.Priority)
		setString(&f.Category, params.Category)
	}), nil
}

func (s *testCaseService) Get(ctx context.Context, testCaseID string) (*domain.TestCase, error) {
	raw, err := s.api.GetTestCase(ctx, testCaseID)
	if err != nil {
		return nil, err
	}
	tc := transform.TestCase(*raw)
	return &tc, nil
}

func (s *testCaseService) Create(ctx context.Context, in domain.TestCaseInput) (*domain.TestCase, error) {
	projectID := s.store.SelectedID()
	if projectID == "" {
		return nil, domain.ErrNoProjectSelected
	}
	if err := validateTestCase(&in); err != nil {
		return nil, err
	}
	raw, err := s.api.CreateTestCase(ctx, transform.TestCaseInput(projectID, in))
	if err != nil {
		return nil, err
	}
	tc := transform.TestCase(*raw)
	s.list.Mutate(prepend(tc))
	return &tc, nil
}

func (s *testCaseService) Update(ctx context.Context, testCaseID string, in domain.TestCaseInput) (*domain.TestCase, error) {
	projectID := s.store.SelectedID()
	if projectID == "" {
		return nil, domain.ErrNoProjectSelected
	}
	if err := validateTestCase(&in); err != nil {
		return nil, err
	}
	raw, err := s.api.UpdateTestCase(ctx, testCaseID, transform.TestCaseInput(projectID, in))
	if err != nil {
		return nil, err
	}
	tc := transform.TestCase(*raw)
	s.list.Mutate(replaceWhere(func(it domain.TestCase) bool { return it.ID == testCaseID }, tc))
	return &tc, nil
}

// Delete drops the test case from the list before the backend confirms.
// On failure the list is refetched to restore it.
func (s *testCaseService) Delete(ctx context.Context, testCaseID string) error {
	s.list.Mutate(removeWhere(func(it domain.TestCase) bool { return it.ID == testCaseID }))
	if err := s.api.DeleteTestCase(ctx, testCaseID); err != nil {
		s.list.Refetch(ctx)
		return err
	}
	return nil
}

func validateTestCase(in *domain.TestCaseInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: test case name is required", domain.ErrInvalidInput)
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	return validateOneOf("priority", &in.Priority,
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical)
}
