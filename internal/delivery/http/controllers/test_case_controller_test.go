package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"bugninjaplatform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCaseController_ListTestCases(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		fakeErr     error
		wantStatus  int
		checkParams func(t *testing.T, p domain.ListParams)
	}{
		{
			name:       "filters passed through",
			query:      "?priority=high&category=checkout",
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, p domain.ListParams) {
				require.NotNil(t, p.Priority)
				assert.Equal(t, "high", *p.Priority)
				require.NotNil(t, p.Category)
				assert.Equal(t, "checkout", *p.Category)
			},
		},
		{
			name:       "empty filter clears",
			query:      "?priority=",
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, p domain.ListParams) {
				require.NotNil(t, p.Priority)
				assert.Empty(t, *p.Priority)
				assert.Nil(t, p.Category)
			},
		},
		{
			name:       "refresh flag",
			query:      "?refresh=true",
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, p domain.ListParams) {
				assert.True(t, p.Refresh)
			},
		},
		{
			name:       "unknown priority",
			query:      "?priority=urgent",
			fakeErr:    domain.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTestCaseService{err: tt.fakeErr}
			ctrl := NewTestCaseController(testLogger, fake, &fakeTestRunService{})
			rr := httptest.NewRecorder()

			ctrl.ListTestCases(rr, httptest.NewRequest(http.MethodGet, "/test-cases"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.checkParams != nil {
				tt.checkParams(t, fake.lastParams)
			}
		})
	}
}

func TestTestCaseController_CreateTestCase(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"name":"Checkout","priority":"high","extraRules":["Use the guest flow"]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"priority":"high"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "bad priority",
			body:           `{"name":"Checkout","priority":"urgent"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "priority",
		},
		{
			name:           "no project selected",
			body:           `{"name":"Checkout"}`,
			fakeErr:        domain.ErrNoProjectSelected,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "no project selected",
		},
		{
			name:           "backend validation",
			body:           `{"name":"Checkout"}`,
			fakeErr:        &domain.APIError{Status: http.StatusUnprocessableEntity, Message: "url_route is invalid"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "url_route",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTestCaseService{err: tt.fakeErr}
			ctrl := NewTestCaseController(testLogger, fake, &fakeTestRunService{})
			req := httptest.NewRequest(http.MethodPost, "/test-cases", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateTestCase(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var tc domain.TestCase
			envelope := decodeEnvelope(t, rr, &tc)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "tc-new", tc.ID)
				assert.Equal(t, []string{"Use the guest flow"}, fake.lastInput.ExtraRules)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestTestCaseController_PathHandlers(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		testCaseID string
		body       string
		fakeErr    error
		handler    func(c *TestCaseController) http.HandlerFunc
		wantStatus int
	}{
		{"get", http.MethodGet, "tc1", "", nil, func(c *TestCaseController) http.HandlerFunc { return c.GetTestCase }, http.StatusOK},
		{"get missing id", http.MethodGet, "", "", nil, func(c *TestCaseController) http.HandlerFunc { return c.GetTestCase }, http.StatusBadRequest},
		{"get not found", http.MethodGet, "tc9", "", &domain.APIError{Status: 404, Message: "Test case tc9 not found"}, func(c *TestCaseController) http.HandlerFunc { return c.GetTestCase }, http.StatusNotFound},
		{"update", http.MethodPut, "tc1", `{"name":"Renamed"}`, nil, func(c *TestCaseController) http.HandlerFunc { return c.UpdateTestCase }, http.StatusOK},
		{"update missing id", http.MethodPut, "", `{"name":"Renamed"}`, nil, func(c *TestCaseController) http.HandlerFunc { return c.UpdateTestCase }, http.StatusBadRequest},
		{"delete", http.MethodDelete, "tc1", "", nil, func(c *TestCaseController) http.HandlerFunc { return c.DeleteTestCase }, http.StatusOK},
		{"delete backend down", http.MethodDelete, "tc1", "", &domain.APIError{Code: domain.CodeNetworkError, Message: "connection refused"}, func(c *TestCaseController) http.HandlerFunc { return c.DeleteTestCase }, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTestCaseService{err: tt.fakeErr}
			ctrl := NewTestCaseController(testLogger, fake, &fakeTestRunService{})
			req := httptest.NewRequest(tt.method, "http://test/test-cases/"+tt.testCaseID, bytes.NewBufferString(tt.body))
			req.SetPathValue("testCaseID", tt.testCaseID)
			rr := httptest.NewRecorder()

			tt.handler(ctrl)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.testCaseID, fake.lastID)
			}
		})
	}
}

func TestTestCaseController_ListTestCaseRuns(t *testing.T) {
	runs := &fakeTestRunService{}
	ctrl := NewTestCaseController(testLogger, &fakeTestCaseService{}, runs)
	req := httptest.NewRequest(http.MethodGet, "/test-cases/tc1/runs?status=failed", nil)
	req.SetPathValue("testCaseID", "tc1")
	rr := httptest.NewRecorder()

	ctrl.ListTestCaseRuns(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, runs.lastParams.TestCase)
	assert.Equal(t, "tc1", *runs.lastParams.TestCase)
	require.NotNil(t, runs.lastParams.Status)
	assert.Equal(t, "failed", *runs.lastParams.Status)

	var st domain.ListState[domain.TestRun]
	decodeEnvelope(t, rr, &st)
	require.Len(t, st.Data, 1)
}

func TestTestCaseController_StartTestRun(t *testing.T) {
	tests := []struct {
		name       string
		testCaseID string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{"success", "tc1", `{"browserConfigId":"bc1"}`, nil, http.StatusCreated},
		{"empty body object", "tc1", `{}`, nil, http.StatusCreated},
		{"missing id", "", `{}`, nil, http.StatusBadRequest},
		{"test case gone", "tc9", `{}`, &domain.APIError{Status: 404, Message: "Test case tc9 not found"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := &fakeTestRunService{err: tt.fakeErr}
			ctrl := NewTestCaseController(testLogger, &fakeTestCaseService{}, runs)
			req := httptest.NewRequest(http.MethodPost, "http://test/test-cases/"+tt.testCaseID+"/runs", bytes.NewBufferString(tt.body))
			req.SetPathValue("testCaseID", tt.testCaseID)
			rr := httptest.NewRecorder()

			ctrl.StartTestRun(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var run domain.TestRun
				decodeEnvelope(t, rr, &run)
				assert.Equal(t, tt.testCaseID, run.TestCaseID)
				assert.Equal(t, domain.RunPending, run.Status)
				assert.Equal(t, runs.lastStart.BrowserConfigID, run.BrowserConfigID)
			}
		})
	}
}
