package domain

import (
	"context"
	"time"
)

// Test run statuses.
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunPassed    = "passed"
	RunFailed    = "failed"
	RunCancelled = "cancelled"
)

// RunStep is one executed step of a test run, with its screenshot.
type RunStep struct {
	ID            string     `json:"id"`
	StepNumber    int        `json:"stepNumber"`
	Action        string     `json:"action"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ScreenshotURL string     `json:"screenshotUrl"`
	CreatedAt     *time.Time `json:"createdAt"`
}

// TestRun is the frontend-normalized record of one execution of a test case.
// swagger:model TestRun
type TestRun struct {
	ID              string     `json:"id"`
	TestCaseID      string     `json:"testCaseId"`
	TestCaseName    string     `json:"testCaseName"`
	ProjectID       string     `json:"projectId"`
	BrowserConfigID string     `json:"browserConfigId"`
	Status          string     `json:"status"`
	ErrorMessage    string     `json:"errorMessage"`
	StartedAt       *time.Time `json:"startedAt"`
	FinishedAt      *time.Time `json:"finishedAt"`
	DurationSeconds float64    `json:"durationSeconds"`
	Steps           []RunStep  `json:"steps"`
	PassedSteps     int        `json:"passedSteps"`
	FailedSteps     int        `json:"failedSteps"`
}

// BackendRunStep is the backend wire shape of a run step.
type BackendRunStep struct {
	ID             string     `json:"id"`
	StepNumber     Numeric    `json:"step_number"`
	Action         string     `json:"action"`
	Description    *string    `json:"description"`
	Status         string     `json:"status"`
	ScreenshotPath *string    `json:"screenshot"`
	CreatedAt      *time.Time `json:"created_at"`
}

// BackendTestRun is the backend wire shape of a test run.
type BackendTestRun struct {
	ID              string           `json:"id"`
	TestCaseID      string           `json:"test_case_id"`
	TestCaseName    *string          `json:"test_case_name"`
	ProjectID       string           `json:"project_id"`
	BrowserConfigID *string          `json:"browser_config_id"`
	Status          string           `json:"current_state"`
	ErrorMessage    *string          `json:"error_message"`
	StartedAt       *time.Time       `json:"started_at"`
	FinishedAt      *time.Time       `json:"finished_at"`
	Steps           []BackendRunStep `json:"history"`
}

// StartRunInput selects the browser configuration of a new run.
type StartRunInput struct {
	BrowserConfigID string `json:"browserConfigId"`
}

// TestRunFilters are the server-side filters of the test run list.
// An empty string means "all".
type TestRunFilters struct {
	Status     string
	TestCaseID string
}

// TestRunService defines the dashboard operations on test runs of the selected project.
type TestRunService interface {
	List(ctx context.Context, params ListParams) (ListState[TestRun], error)
	Get(ctx context.Context, testRunID string) (*TestRun, error)
	Start(ctx context.Context, testCaseID string, in StartRunInput) (*TestRun, error)
}
