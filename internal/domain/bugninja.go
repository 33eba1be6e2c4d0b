package domain

import "context"

// BackendPage is the backend list response envelope.
type BackendPage[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"total_count"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// BackendBrowserConfigInput is the create/update body for a browser configuration.
type BackendBrowserConfigInput struct {
	ProjectID     string                 `json:"project_id"`
	BrowserConfig BackendBrowserSettings `json:"browser_config"`
}

// BackendSecretInput is the create/update body for a secret.
type BackendSecretInput struct {
	ProjectID   string `json:"project_id"`
	SecretName  string `json:"secret_name"`
	SecretValue string `json:"secret_value"`
}

// BackendStartRunInput is the body that starts a test run.
type BackendStartRunInput struct {
	TestCaseID      string `json:"test_case_id"`
	BrowserConfigID string `json:"browser_config_id,omitempty"`
}

// BugninjaAPI is the subset of the Bugninja REST backend the dashboard consumes.
// Every failure is returned as (or wraps) an *APIError.
type BugninjaAPI interface {
	ListProjects(ctx context.Context, q ListQuery[ProjectFilters]) (*BackendPage[BackendProject], error)
	GetProject(ctx context.Context, id string) (*BackendProject, error)
	CreateProject(ctx context.Context, in ProjectInput) (*BackendProject, error)
	UpdateProject(ctx context.Context, id string, in ProjectInput) (*BackendProject, error)
	DeleteProject(ctx context.Context, id string) error

	ListTestCases(ctx context.Context, q ListQuery[TestCaseFilters]) (*BackendPage[BackendTestCase], error)
	GetTestCase(ctx context.Context, id string) (*BackendTestCase, error)
	CreateTestCase(ctx context.Context, in BackendTestCaseInput) (*BackendTestCase, error)
	UpdateTestCase(ctx context.Context, id string, in BackendTestCaseInput) (*BackendTestCase, error)
	DeleteTestCase(ctx context.Context, id string) error

	ListTestRuns(ctx context.Context, q ListQuery[TestRunFilters]) (*BackendPage[BackendTestRun], error)
	GetTestRun(ctx context.Context, id string) (*BackendTestRun, error)
	StartTestRun(ctx context.Context, in BackendStartRunInput) (*BackendTestRun, error)

	ListBrowserConfigs(ctx context.Context, projectID string) ([]BackendBrowserConfig, error)
	CreateBrowserConfig(ctx context.Context, in BackendBrowserConfigInput) (*BackendBrowserConfig, error)
	UpdateBrowserConfig(ctx context.Context, id string, in BackendBrowserConfigInput) (*BackendBrowserConfig, error)
	DeleteBrowserConfig(ctx context.Context, id string) error

	ListSecrets(ctx context.Context, projectID string) ([]BackendSecret, error)
	CreateSecret(ctx context.Context, in BackendSecretInput) (*BackendSecret, error)
	UpdateSecret(ctx context.Context, id string, in BackendSecretInput) (*BackendSecret, error)
	DeleteSecret(ctx context.Context, id string) error
}
