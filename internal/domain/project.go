package domain

import (
	"context"
	"time"
)

// Project groups test cases, browser configs and secrets.
// swagger:model Project
type Project struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultStartURL string    `json:"defaultStartUrl"`
	TestCaseCount   int       `json:"testCaseCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BackendProject is the backend wire shape of a project.
type BackendProject struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	DefaultStartURL *string   `json:"default_start_url"`
	TestCaseCount   Numeric   `json:"test_case_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectInput is the writable part of a project.
type ProjectInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DefaultStartURL string `json:"default_start_url"`
}

// ProjectFilters is empty: the project list takes only search and sort.
type ProjectFilters struct{}

// ProjectOverview summarises a project for the dashboard landing view.
type ProjectOverview struct {
	Project       Project `json:"project"`
	TestCaseCount int     `json:"testCaseCount"`
	TestRunCount  int     `json:"testRunCount"`
	FailedRuns    int     `json:"failedRuns"`
}

// PreferenceRepository persists small dashboard preferences such as the selected project id.
// Get returns ErrNotFound when the key is unset.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ProjectService defines the dashboard operations on projects and the current selection.
type ProjectService interface {
	List(ctx context.Context, params ListParams) (ListState[Project], error)
	InitSelection(ctx context.Context) (*Project, error)
	Selected() (*Project, bool)
	Select(ctx context.Context, projectID string) (*Project, error)
	Get(ctx context.Context, projectID string) (*Project, error)
	Create(ctx context.Context, in ProjectInput) (*Project, error)
	Update(ctx context.Context, projectID string, in ProjectInput) (*Project, error)
	Delete(ctx context.Context, projectID string) error
	Overview(ctx context.Context, projectID string) (*ProjectOverview, error)
}
