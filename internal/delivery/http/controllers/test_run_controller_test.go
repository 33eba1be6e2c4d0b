package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bugninjaplatform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestRunController_ListTestRuns(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		fakeErr     error
		wantStatus  int
		checkParams func(t *testing.T, p domain.ListParams)
	}{
		{
			name:       "status and test case filter",
			query:      "?status=passed&test_case_id=tc1",
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, p domain.ListParams) {
				require.NotNil(t, p.Status)
				assert.Equal(t, "passed", *p.Status)
				require.NotNil(t, p.TestCase)
				assert.Equal(t, "tc1", *p.TestCase)
			},
		},
		{
			name:       "bad page size",
			query:      "?page_size=x",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "backend unavailable",
			fakeErr:    &domain.APIError{Status: http.StatusServiceUnavailable, Message: "maintenance"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTestRunService{err: tt.fakeErr}
			rr := httptest.NewRecorder()

			NewTestRunController(testLogger, fake).ListTestRuns(rr, httptest.NewRequest(http.MethodGet, "/test-runs"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.checkParams != nil {
				tt.checkParams(t, fake.lastParams)
			}
		})
	}
}

func TestTestRunController_GetTestRun(t *testing.T) {
	tests := []struct {
		name       string
		testRunID  string
		fakeErr    error
		wantStatus int
	}{
		{"success", "r1", nil, http.StatusOK},
		{"missing id", "", nil, http.StatusBadRequest},
		{"not found", "r9", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTestRunService{err: tt.fakeErr}
			req := httptest.NewRequest(http.MethodGet, "http://test/test-runs/"+tt.testRunID, nil)
			req.SetPathValue("testRunID", tt.testRunID)
			rr := httptest.NewRecorder()

			NewTestRunController(testLogger, fake).GetTestRun(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var run domain.TestRun
				decodeEnvelope(t, rr, &run)
				assert.Equal(t, "r1", run.ID)
				assert.Equal(t, domain.RunPassed, run.Status)
			}
		})
	}
}
