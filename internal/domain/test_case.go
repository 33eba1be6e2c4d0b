package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Test case priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ExtraRule is one numbered natural-language rule attached to a test case.
type ExtraRule struct {
	ID          string `json:"id"`
	RuleNumber  int    `json:"ruleNumber"`
	Description string `json:"description"`
}

// TestCase is the frontend-normalized test case definition.
// swagger:model TestCase
type TestCase struct {
	ID             string          `json:"id"`
	ProjectID      string          `json:"projectId"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Goal           string          `json:"goal"`
	StartURL       string          `json:"startUrl"`
	Priority       string          `json:"priority"`
	Category       string          `json:"category"`
	AllowedDomains []string        `json:"allowedDomains"`
	ExtraRules     []ExtraRule     `json:"extraRules"`
	BrowserConfigs []BrowserConfig `json:"browserConfigs"`
	Secrets        []Secret        `json:"secrets"`
	TotalRuns      int             `json:"totalRuns"`
	PassedRuns     int             `json:"passedRuns"`
	FailedRuns     int             `json:"failedRuns"`
	LastRunAt      *time.Time      `json:"lastRunAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BackendTestCase is the backend wire shape of a test case.
// ExtraRules is kept raw because several legacy shapes are in circulation.
type BackendTestCase struct {
	ID              string                 `json:"id"`
	ProjectID       string                 `json:"project_id"`
	TestCode        string                 `json:"test_code"`
	TestName        string                 `json:"test_name"`
	TestDescription *string                `json:"test_description"`
	TestGoal        *string                `json:"test_goal"`
	URLRoute        *string                `json:"url_route"`
	Priority        string                 `json:"priority"`
	Category        *string                `json:"category"`
	AllowedDomains  []string               `json:"allowed_domains"`
	ExtraRules      json.RawMessage        `json:"extra_rules"`
	BrowserConfigs  []BackendBrowserConfig `json:"browser_configs"`
	Secrets         []BackendSecret        `json:"secrets"`
	TotalRuns       Numeric                `json:"total_runs"`
	PassedRuns      Numeric                `json:"passed_runs"`
	FailedRuns      Numeric                `json:"failed_runs"`
	LastRunAt       *time.Time             `json:"last_run_at"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// TestCaseInput is the writable part of a test case.
type TestCaseInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Goal             string   `json:"goal"`
	StartURL         string   `json:"startUrl"`
	Priority         string   `json:"priority"`
	Category         string   `json:"category"`
	AllowedDomains   []string `json:"allowedDomains"`
	ExtraRules       []string `json:"extraRules"`
	BrowserConfigIDs []string `json:"browserConfigIds"`
	SecretIDs        []string `json:"secretIds"`
}

// BackendExtraRule is the object form of an extra rule on the wire.
type BackendExtraRule struct {
	ID          string `json:"id,omitempty"`
	RuleNumber  int    `json:"rule_number"`
	Description string `json:"description"`
}

// BackendTestCaseInput is the create/update body sent to the backend.
type BackendTestCaseInput struct {
	ProjectID        string             `json:"project_id"`
	TestName         string             `json:"test_name"`
	TestDescription  string             `json:"test_description"`
	TestGoal         string             `json:"test_goal"`
	URLRoute         string             `json:"url_route"`
	Priority         string             `json:"priority"`
	Category         string             `json:"category,omitempty"`
	AllowedDomains   []string           `json:"allowed_domains"`
	ExtraRules       []BackendExtraRule `json:"extra_rules"`
	BrowserConfigIDs []string           `json:"browser_config_ids"`
	SecretIDs        []string           `json:"secret_ids"`
}

// TestCaseFilters are the server-side filters of the test case list.
// An empty string means "all".
type TestCaseFilters struct {
	Priority string
	Category string
}

// TestCaseService defines the dashboard operations on test cases of the selected project.
type TestCaseService interface {
	List(ctx context.Context, params ListParams) (ListState[TestCase], error)
	Get(ctx context.Context, testCaseID string) (*TestCase, error)
	Create(ctx context.Context, in TestCaseInput) (*TestCase, error)
	Update(ctx context.Context, testCaseID string, in TestCaseInput) (*TestCase, error)
	Delete(ctx context.Context, testCaseID string) error
}
