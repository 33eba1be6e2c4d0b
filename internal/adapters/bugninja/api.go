package bugninja

import (
	"context"
	"net/url"
	"strconv"

	"bugninjaplatform/internal/domain"
)

// settingsPageSize is large enough to fetch every browser config or secret of a project in one call.
const settingsPageSize = 100

// API implements domain.BugninjaAPI on top of a Client.
type API struct {
	client *Client
}

// NewAPI returns the backend endpoints bound to client.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

var _ domain.BugninjaAPI = (*API)(nil)

func listValues[F comparable](q domain.ListQuery[F]) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.SortOrder.Valid() {
		v.Set("sort_order", string(q.SortOrder))
	}
	setIf(v, "search", q.Search)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func resourcePath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

// Projects

func (a *API) ListProjects(ctx context.Context, q domain.ListQuery[domain.ProjectFilters]) (*domain.BackendPage[domain.BackendProject], error) {
	var page domain.BackendPage[domain.BackendProject]
	if err := a.client.Get(ctx, "/projects/", listValues(q), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *API) GetProject(ctx context.Context, id string) (*domain.BackendProject, error) {
	var p domain.BackendProject
	if err := a.client.Get(ctx, resourcePath("projects", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.BackendProject, error) {
	var p domain.BackendProject
	if err := a.client.Post(ctx, "/projects/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) UpdateProject(ctx context.Context, id string, in domain.ProjectInput) (*domain.BackendProject, error) {
	var p domain.BackendProject
	if err := a.client.Put(ctx, resourcePath("projects", id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) DeleteProject(ctx context.Context, id string) error {
	return a.client.Delete(ctx, resourcePath("projects", id), nil)
}

// Test cases

func (a *API) ListTestCases(ctx context.Context, q domain.ListQuery[domain.TestCaseFilters]) (*domain.BackendPage[domain.BackendTestCase], error) {
	v := listValues(q)
	setIf(v, "project_id", q.ParentID)
	setIf(v, "priority", q.Filters.Priority)
	setIf(v, "category", q.Filters.Category)

	var page domain.BackendPage[domain.BackendTestCase]
	if err := a.client.Get(ctx, "/test-cases/", v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *API) GetTestCase(ctx context.Context, id string) (*domain.BackendTestCase, error) {
	var tc domain.BackendTestCase
	if err := a.client.Get(ctx, resourcePath("test-cases", id), nil, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (a *API) CreateTestCase(ctx context.Context, in domain.BackendTestCaseInput) (*domain.BackendTestCase, error) {
	var tc domain.BackendTestCase
	if err := a.client.Post(ctx, "/test-cases/", in, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (a *API) UpdateTestCase(ctx context.Context, id string, in domain.BackendTestCaseInput) (*domain.BackendTestCase, error) {
	var tc domain.BackendTestCase
	if err := a.client.Put(ctx, resourcePath("test-cases", id), in, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (a *API) DeleteTestCase(ctx context.Context, id string) error {
	return a.client.Delete(ctx, resourcePath("test-cases", id), nil)
}

// Test runs

func (a *API) ListTestRuns(ctx context.Context, q domain.ListQuery[domain.TestRunFilters]) (*domain.BackendPage[domain.BackendTestRun], error) {
	v := listValues(q)
	setIf(v, "project_id", q.ParentID)
	setIf(v, "test_case_id", q.Filters.TestCaseID)
	setIf(v, "status", q.Filters.Status)

	var page domain.BackendPage[domain.BackendTestRun]
	if err := a.client.Get(ctx, "/test-runs/", v, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *API) GetTestRun(ctx context.Context, id string) (*domain.BackendTestRun, error) {
	var run domain.BackendTestRun
	if err := a.client.Get(ctx, resourcePath("test-runs", id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (a *API) StartTestRun(ctx context.Context, in domain.BackendStartRunInput) (*domain.BackendTestRun, error) {
	var run domain.BackendTestRun
	if err := a.client.Post(ctx, "/test-runs/", in, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Browser configs

func (a *API) ListBrowserConfigs(ctx context.Context, projectID string) ([]domain.BackendBrowserConfig, error) {
	v := url.Values{}
	v.Set("project_id", projectID)
	v.Set("page_size", strconv.Itoa(settingsPageSize))

	var page domain.BackendPage[domain.BackendBrowserConfig]
	if err := a.client.Get(ctx, "/browser-configs/", v, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (a *API) CreateBrowserConfig(ctx context.Context, in domain.BackendBrowserConfigInput) (*domain.BackendBrowserConfig, error) {
	var bc domain.BackendBrowserConfig
	if err := a.client.Post(ctx, "/browser-configs/", in, &bc); err != nil {
		return nil, err
	}
	return &bc, nil
}

func (a *API) UpdateBrowserConfig(ctx context.Context, id string, in domain.BackendBrowserConfigInput) (*domain.BackendBrowserConfig, error) {
	var bc domain.BackendBrowserConfig
	if err := a.client.Put(ctx, resourcePath("browser-configs", id), in, &bc); err != nil {
		return nil, err
	}
	return &bc, nil
}

func (a *API) DeleteBrowserConfig(ctx context.Context, id string) error {
	return a.client.Delete(ctx, resourcePath("browser-configs", id), nil)
}

// Secrets

func (a *API) ListSecrets(ctx context.Context, projectID string) ([]domain.BackendSecret, error) {
	v := url.Values{}
	v.Set("project_id", projectID)
	v.Set("page_size", strconv.Itoa(settingsPageSize))

	var page domain.BackendPage[domain.BackendSecret]
	if err := a.client.Get(ctx, "/secrets/", v, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (a *API) CreateSecret(ctx context.Context, in domain.BackendSecretInput) (*domain.BackendSecret, error) {
	var s domain.BackendSecret
	if err := a.client.Post(ctx, "/secrets/", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) UpdateSecret(ctx context.Context, id string, in domain.BackendSecretInput) (*domain.BackendSecret, error) {
	var s domain.BackendSecret
	if err := a.client.Put(ctx, resourcePath("secrets", id), in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) DeleteSecret(ctx context.Context, id string) error {
	return a.client.Delete(ctx, resourcePath("secrets", id), nil)
}
