package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/metrics"
	"bugninjaplatform/internal/paginate"
	"bugninjaplatform/internal/selection"
	"bugninjaplatform/internal/transform"
)

type projectService struct {
	api    domain.BugninjaAPI
	store  *selection.Store
	list   *paginate.Paginator[domain.Project, domain.ProjectFilters]
	logger *slog.Logger
}

func NewProjectService(api domain.BugninjaAPI,
	store *selection.Store,
	pageSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.ProjectService {
	logger = orDiscard(logger)
	return &projectService{
		api:   api,
		store: store,
		list: paginate.New(paginate.Config[domain.Project, domain.ProjectFilters]{
			Resource: "projects",
			Fetch:    pageFetcher(api.ListProjects, transform.Project),
			PageSize: pageSize,
			Metrics:  m,
			Logger:   logger,
		}),
		logger: logger,
	}
}

func (s *projectService) List(ctx context.Context, params domain.ListParams) (domain.ListState[domain.Project], error) {
	if err := validateParams(params); err != nil {
		return domain.ListState[domain.Project]{}, err
	}
	return listState(ctx, s.list, params, nil), nil
}

// InitSelection loads the project list and restores the persisted selection against it.
func (s *projectService) InitSelection(ctx context.Context) (*domain.Project, error) {
	st := s.list.Load(ctx)
	if st.Status == domain.StatusError {
		return nil, fmt.Errorf("load projects: %s", st.Error)
	}
	return s.store.Init(ctx, st.Data)
}

func (s *projectService) Selected() (*domain.Project, bool) {
	return s.store.Selected()
}

func (s *projectService) Select(ctx context.Context, projectID string) (*domain.Project, error) {
	candidates := s.list.State().Data
	if !containsProject(candidates, projectID) {
		p, err := s.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		candidates = []domain.Project{*p}
	}
	return s.store.Select(ctx, projectID, candidates)
}

func (s *projectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	raw, err := s.api.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	p := transform.Project(*raw)
	return &p, nil
}

func (s *projectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	if err := validateProject(&in); err != nil {
		return nil, err
	}
	raw, err := s.api.CreateProject(ctx, in)
	if err != nil {
		return nil, err
	}
	p := transform.Project(*raw)
	s.list.Mutate(prepend(p))

	if s.store.SelectedID() == "" {
		if _, err := s.store.Select(ctx, p.ID, []domain.Project{p}); err != nil {
			s.logger.Warn("failed to select new project", "project_id", p.ID, "err", err)
		}
	}
	return &p, nil
}

func (s *projectService) Update(ctx context.Context, projectID string, in domain.ProjectInput) (*domain.Project, error) {
	if err := validateProject(&in); err != nil {
		return nil, err
	}
	raw, err := s.api.UpdateProject(ctx, projectID, in)
	if err != nil {
		return nil, err
	}
	p := transform.Project(*raw)
	s.list.Mutate(replaceWhere(func(it domain.Project) bool { return it.ID == projectID }, p))
	s.store.Refresh(p)
	return &p, nil
}

// Delete removes the project. If it was selected, the selection moves to the
// first remaining project.
func (s *projectService) Delete(ctx context.Context, projectID string) error {
	if err := s.api.DeleteProject(ctx, projectID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	st := s.list.Mutate(removeWhere(func(it domain.Project) bool { return it.ID == projectID }))

	if s.store.SelectedID() != projectID {
		return nil
	}
	s.store.Forget(ctx, projectID)
	if _, err := s.store.Init(ctx, st.Data); err != nil {
		s.logger.Warn("failed to reselect project after delete", "project_id", projectID, "err", err)
	}
	return nil
}

// Overview fetches the project and its counters concurrently.
func (s *projectService) Overview(ctx context.Context, projectID string) (*domain.ProjectOverview, error) {
	var (
		project                 *domain.Project
		cases, runs, failedRuns int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Get(gctx, projectID)
		project = p
		return err
	})
	g.Go(func() error {
		page, err := s.api.ListTestCases(gctx, countQuery[domain.TestCaseFilters](projectID, domain.TestCaseFilters{}))
		if err != nil {
			return err
		}
		cases = page.TotalCount
		return nil
	})
	g.Go(func() error {
		page, err := s.api.ListTestRuns(gctx, countQuery[domain.TestRunFilters](projectID, domain.TestRunFilters{}))
		if err != nil {
			return err
		}
		runs = page.TotalCount
		return nil
	})
	g.Go(func() error {
		page, err := s.api.ListTestRuns(gctx, countQuery[domain.TestRunFilters](projectID, domain.TestRunFilters{Status: domain.RunFailed}))
		if err != nil {
			return err
		}
		failedRuns = page.TotalCount
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &domain.ProjectOverview{
		Project:       *project,
		TestCaseCount: cases,
		TestRunCount:  runs,
		FailedRuns:    failedRuns,
	}, nil
}

// countQuery asks for a single item; only the total count is used.
func countQuery[F comparable](projectID string, filters F) domain.ListQuery[F] {
	return domain.ListQuery[F]{
		ParentID:  projectID,
		Page:      1,
		PageSize:  1,
		SortOrder: domain.SortDesc,
		Filters:   filters,
	}
}

func validateProject(in *domain.ProjectInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	return nil
}

func containsProject(projects []domain.Project, id string) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}
