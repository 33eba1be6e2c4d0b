package services

import (
	"context"
	"fmt"
	"sync"

	"bugninjaplatform/internal/domain"
)

// fakeAPI is an in-memory BugninjaAPI for tests.
type fakeAPI struct {
	mu sync.Mutex

	projects  []domain.BackendProject
	testCases []domain.BackendTestCase
	testRuns  []domain.BackendTestRun
	browsers  []domain.BackendBrowserConfig
	secrets   []domain.BackendSecret
	nextID    int

	caseQueries []domain.ListQuery[domain.TestCaseFilters]
	runQueries  []domain.ListQuery[domain.TestRunFilters]

	// errs maps an operation name to the error it returns.
	errs map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: make(map[string]error)}
}

func (f *fakeAPI) fail(op string) error {
	return f.errs[op]
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func notFoundErr(msg string) error {
	return &domain.APIError{Status: 404, Message: msg}
}

func paged[T any](items []T, page, pageSize int) *domain.BackendPage[T] {
	if pageSize < 1 {
		pageSize = len(items)
	}
	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))
	out := append([]T{}, items[start:end]...)
	r := domain.NewListResult(out, len(items), page, pageSize)
	return &domain.BackendPage[T]{
		Items: r.Items, TotalCount: r.TotalCount, Page: r.Page, PageSize: r.PageSize,
		TotalPages: r.TotalPages, HasNext: r.HasNext, HasPrevious: r.HasPrevious,
	}
}

func (f *fakeAPI) hasProject(id string) bool {
	for _, p := range f.projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeAPI) ListProjects(ctx context.Context, q domain.ListQuery[domain.ProjectFilters]) (*domain.BackendPage[domain.BackendProject], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListProjects"); err != nil {
		return nil, err
	}
	return paged(f.projects, q.Page, q.PageSize), nil
}

func (f *fakeAPI) GetProject(ctx context.Context, id string) (*domain.BackendProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFoundErr("Project " + id + " not found")
}

func (f *fakeAPI) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.BackendProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := domain.BackendProject{ID: f.id("p"), Name: in.Name}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeAPI) UpdateProject(ctx context.Context, id string, in domain.ProjectInput) (*domain.BackendProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Name = in.Name
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, notFoundErr("Project " + id + " not found")
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return notFoundErr("Project " + id + " not found")
}

func (f *fakeAPI) ListTestCases(ctx context.Context, q domain.ListQuery[domain.TestCaseFilters]) (*domain.BackendPage[domain.BackendTestCase], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caseQueries = append(f.caseQueries, q)
	if err := f.fail("ListTestCases"); err != nil {
		return nil, err
	}
	if !f.hasProject(q.ParentID) {
		return nil, notFoundErr("Project " + q.ParentID + " not found")
	}
	var items []domain.BackendTestCase
	for _, tc := range f.testCases {
		if tc.ProjectID == q.ParentID && (q.Filters.Priority == "" || tc.Priority == q.Filters.Priority) {
			items = append(items, tc)
		}
	}
	return paged(items, q.Page, q.PageSize), nil
}

func (f *fakeAPI) GetTestCase(ctx context.Context, id string) (*domain.BackendTestCase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tc := range f.testCases {
		if tc.ID == id {
			return &tc, nil
		}
	}
	return nil, notFoundErr("Test case " + id + " not found")
}

func (f *fakeAPI) CreateTestCase(ctx context.Context, in domain.BackendTestCaseInput) (*domain.BackendTestCase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tc := domain.BackendTestCase{ID: f.id("tc"), ProjectID: in.ProjectID, TestName: in.TestName, Priority: in.Priority}
	f.testCases = append(f.testCases, tc)
	return &tc, nil
}

func (f *fakeAPI) UpdateTestCase(ctx context.Context, id string, in domain.BackendTestCaseInput) (*domain.BackendTestCase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.testCases {
		if f.testCases[i].ID == id {
			f.testCases[i].TestName = in.TestName
			f.testCases[i].Priority = in.Priority
			tc := f.testCases[i]
			return &tc, nil
		}
	}
	return nil, notFoundErr("Test case " + id + " not found")
}

func (f *fakeAPI) DeleteTestCase(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteTestCase"); err != nil {
		return err
	}
	for i := range f.testCases {
		if f.testCases[i].ID == id {
			f.testCases = append(f.testCases[:i], f.testCases[i+1:]...)
			return nil
		}
	}
	return notFoundErr("Test case " + id + " not found")
}

func (f *fakeAPI) ListTestRuns(ctx context.Context, q domain.ListQuery[domain.TestRunFilters]) (*domain.BackendPage[domain.BackendTestRun], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runQueries = append(f.runQueries, q)
	if !f.hasProject(q.ParentID) {
		return nil, notFoundErr("Project " + q.ParentID + " not found")
	}
	if q.Filters.TestCaseID != "" {
		found := false
		for _, tc := range f.testCases {
			found = found || tc.ID == q.Filters.TestCaseID
		}
		if !found {
			return nil, notFoundErr("Test case " + q.Filters.TestCaseID + " not found")
		}
	}
	var items []domain.BackendTestRun
	for _, r := range f.testRuns {
		if r.ProjectID != q.ParentID {
			continue
		}
		if q.Filters.TestCaseID != "" && r.TestCaseID != q.Filters.TestCaseID {
			continue
		}
		if q.Filters.Status != "" && r.Status != q.Filters.Status {
			continue
		}
		items = append(items, r)
	}
	return paged(items, q.Page, q.PageSize), nil
}

func (f *fakeAPI) GetTestRun(ctx context.Context, id string) (*domain.BackendTestRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.testRuns {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, notFoundErr("Test run " + id + " not found")
}

func (f *fakeAPI) StartTestRun(ctx context.Context, in domain.BackendStartRunInput) (*domain.BackendTestRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tc := range f.testCases {
		if tc.ID == in.TestCaseID {
			r := domain.BackendTestRun{ID: f.id("run"), TestCaseID: tc.ID, ProjectID: tc.ProjectID, Status: "PENDING"}
			f.testRuns = append(f.testRuns, r)
			return &r, nil
		}
	}
	return nil, notFoundErr("Test case " + in.TestCaseID + " not found")
}

func (f *fakeAPI) ListBrowserConfigs(ctx context.Context, projectID string) ([]domain.BackendBrowserConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BackendBrowserConfig
	for _, bc := range f.browsers {
		if bc.ProjectID == projectID {
			out = append(out, bc)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateBrowserConfig(ctx context.Context, in domain.BackendBrowserConfigInput) (*domain.BackendBrowserConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bc := domain.BackendBrowserConfig{ID: f.id("bc"), ProjectID: in.ProjectID, BrowserConfig: in.BrowserConfig}
	f.browsers = append(f.browsers, bc)
	return &bc, nil
}

func (f *fakeAPI) UpdateBrowserConfig(ctx context.Context, id string, in domain.BackendBrowserConfigInput) (*domain.BackendBrowserConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.browsers {
		if f.browsers[i].ID == id {
			f.browsers[i].BrowserConfig = in.BrowserConfig
			bc := f.browsers[i]
			return &bc, nil
		}
	}
	return nil, notFoundErr("Browser config " + id + " not found")
}

func (f *fakeAPI) DeleteBrowserConfig(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAPI) ListSecrets(ctx context.Context, projectID string) ([]domain.BackendSecret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BackendSecret
	for _, s := range f.secrets {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateSecret(ctx context.Context, in domain.BackendSecretInput) (*domain.BackendSecret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.BackendSecret{ID: f.id("sec"), ProjectID: in.ProjectID, SecretName: in.SecretName, SecretValue: in.SecretValue}
	f.secrets = append(f.secrets, s)
	return &s, nil
}

func (f *fakeAPI) UpdateSecret(ctx context.Context, id string, in domain.BackendSecretInput) (*domain.BackendSecret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.BackendSecret{ID: id, ProjectID: in.ProjectID, SecretName: in.SecretName, SecretValue: in.SecretValue}
	return &s, nil
}

func (f *fakeAPI) DeleteSecret(ctx context.Context, id string) error {
	return nil
}

// fakePrefs is an in-memory PreferenceRepository for tests.
type fakePrefs struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: make(map[string]string)}
}

func (f *fakePrefs) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (f *fakePrefs) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakePrefs) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}
