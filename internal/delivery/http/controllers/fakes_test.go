package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope and unmarshals its data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil && envelope.Data != nil {
		b, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, dest))
	}
	return envelope
}

// fakeProjectService implements domain.ProjectService for handler tests.
type fakeProjectService struct {
	err        error
	selected   *domain.Project
	initResult *domain.Project
	initErr    error
	lastParams domain.ListParams
	lastInput  domain.ProjectInput
	lastID     string
	initCalls  int
}

func (f *fakeProjectService) List(_ context.Context, params domain.ListParams) (domain.ListState[domain.Project], error) {
	f.lastParams = params
	if f.err != nil {
		return domain.ListState[domain.Project]{}, f.err
	}
	return domain.ListState[domain.Project]{
		Status:     domain.StatusReady,
		Data:       []domain.Project{{ID: "p1", Name: "Shop"}},
		TotalCount: 1,
		Page:       1,
		PageSize:   10,
		TotalPages: 1,
	}, nil
}

func (f *fakeProjectService) InitSelection(context.Context) (*domain.Project, error) {
	f.initCalls++
	return f.initResult, f.initErr
}

func (f *fakeProjectService) Selected() (*domain.Project, bool) {
	return f.selected, f.selected != nil
}

func (f *fakeProjectService) Select(_ context.Context, projectID string) (*domain.Project, error) {
	f.lastID = projectID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Project{ID: projectID}, nil
}

func (f *fakeProjectService) Get(_ context.Context, projectID string) (*domain.Project, error) {
	f.lastID = projectID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Project{ID: projectID, Name: "Shop"}, nil
}

func (f *fakeProjectService) Create(_ context.Context, in domain.ProjectInput) (*domain.Project, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Project{ID: "p-new", Name: in.Name, DefaultStartURL: in.DefaultStartURL}, nil
}

func (f *fakeProjectService) Update(_ context.Context, projectID string, in domain.ProjectInput) (*domain.Project, error) {
	f.lastID, f.lastInput = projectID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Project{ID: projectID, Name: in.Name}, nil
}

func (f *fakeProjectService) Delete(_ context.Context, projectID string) error {
	f.lastID = projectID
	return f.err
}

func (f *fakeProjectService) Overview(_ context.Context, projectID string) (*domain.ProjectOverview, error) {
	f.lastID = projectID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ProjectOverview{Project: domain.Project{ID: projectID}, TestCaseCount: 4, TestRunCount: 9, FailedRuns: 2}, nil
}

// fakeTestCaseService implements domain.TestCaseService for handler tests.
type fakeTestCaseService struct {
	err        error
	lastParams domain.ListParams
	lastInput  domain.TestCaseInput
	lastID     string
}

func (f *fakeTestCaseService) List(_ context.Context, params domain.ListParams) (domain.ListState[domain.TestCase], error) {
	f.lastParams = params
	if f.err != nil {
		return domain.ListState[domain.TestCase]{}, f.err
	}
	return domain.ListState[domain.TestCase]{Status: domain.StatusReady, Data: []domain.TestCase{{ID: "tc1"}}}, nil
}

func (f *fakeTestCaseService) Get(_ context.Context, testCaseID string) (*domain.TestCase, error) {
	f.lastID = testCaseID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TestCase{ID: testCaseID}, nil
}

func (f *fakeTestCaseService) Create(_ context.Context, in domain.TestCaseInput) (*domain.TestCase, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TestCase{ID: "tc-new", Name: in.Name, Priority: in.Priority}, nil
}

func (f *fakeTestCaseService) Update(_ context.Context, testCaseID string, in domain.TestCaseInput) (*domain.TestCase, error) {
	f.lastID, f.lastInput = testCaseID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TestCase{ID: testCaseID, Name: in.Name}, nil
}

func (f *fakeTestCaseService) Delete(_ context.Context, testCaseID string) error {
	f.lastID = testCaseID
	return f.err
}

// fakeTestRunService implements domain.TestRunService for handler tests.
type fakeTestRunService struct {
	err        error
	lastParams domain.ListParams
	lastID     string
	lastStart  domain.StartRunInput
}

func (f *fakeTestRunService) List(_ context.Context, params domain.ListParams) (domain.ListState[domain.TestRun], error) {
	f.lastParams = params
	if f.err != nil {
		return domain.ListState[domain.TestRun]{}, f.err
	}
	return domain.ListState[domain.TestRun]{Status: domain.StatusReady, Data: []domain.TestRun{{ID: "r1"}}}, nil
}

func (f *fakeTestRunService) Get(_ context.Context, testRunID string) (*domain.TestRun, error) {
	f.lastID = testRunID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TestRun{ID: testRunID, Status: domain.RunPassed}, nil
}

func (f *fakeTestRunService) Start(_ context.Context, testCaseID string, in domain.StartRunInput) (*domain.TestRun, error) {
	f.lastID, f.lastStart = testCaseID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TestRun{ID: "r-new", TestCaseID: testCaseID, BrowserConfigID: in.BrowserConfigID, Status: domain.RunPending}, nil
}

// fakeSettingsService implements domain.SettingsService for handler tests.
type fakeSettingsService struct {
	err         error
	lastID      string
	lastBrowser domain.BrowserConfigInput
	lastSecret  domain.SecretInput
}

func (f *fakeSettingsService) ListBrowserConfigs(context.Context) ([]domain.BrowserConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.BrowserConfig{{ID: "bc1", Name: "Chrome 1280x720"}}, nil
}

func (f *fakeSettingsService) CreateBrowserConfig(_ context.Context, in domain.BrowserConfigInput) (*domain.BrowserConfig, error) {
	f.lastBrowser = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.BrowserConfig{ID: "bc-new", BrowserChannel: in.BrowserChannel, Viewport: in.Viewport}, nil
}

func (f *fakeSettingsService) UpdateBrowserConfig(_ context.Context, id string, in domain.BrowserConfigInput) (*domain.BrowserConfig, error) {
	f.lastID, f.lastBrowser = id, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.BrowserConfig{ID: id, BrowserChannel: in.BrowserChannel}, nil
}

func (f *fakeSettingsService) DeleteBrowserConfig(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeSettingsService) ListSecrets(context.Context) ([]domain.Secret, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Secret{{ID: "s1", Name: "API_KEY"}}, nil
}

func (f *fakeSettingsService) CreateSecret(_ context.Context, in domain.SecretInput) (*domain.Secret, error) {
	f.lastSecret = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Secret{ID: "s-new", Name: in.Name, Value: in.Value}, nil
}

func (f *fakeSettingsService) UpdateSecret(_ context.Context, id string, in domain.SecretInput) (*domain.Secret, error) {
	f.lastID, f.lastSecret = id, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Secret{ID: id, Name: in.Name}, nil
}

func (f *fakeSettingsService) DeleteSecret(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}
