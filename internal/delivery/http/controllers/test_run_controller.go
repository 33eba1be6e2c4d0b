package controllers

import (
	"log/slog"
	"net/http"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"
)

// TestRunListSuccessResponse is the success response envelope for test run lists (200).
type TestRunListSuccessResponse struct {
	Data  domain.ListState[domain.TestRun] `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// TestRunSuccessResponse is the success response envelope for single test run endpoints.
type TestRunSuccessResponse struct {
	Data  *domain.TestRun   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TestRunController struct {
	Logger  *slog.Logger
	Service domain.TestRunService
}

func NewTestRunController(logger *slog.Logger, svc domain.TestRunService) *TestRunController {
	return &TestRunController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTestRuns godoc
// @Summary List test runs of the selected project
// @Description Returns the current page of runs. A test_case_id that no longer exists is dropped and the list refetched without it.
// @Tags test-runs
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Param search query string false "Search text"
// @Param sort_order query string false "asc or desc"
// @Param status query string false "pending, running, passed, failed or cancelled; empty clears"
// @Param test_case_id query string false "Test case ID; empty clears"
// @Param refresh query bool false "Refetch even if nothing changed"
// @Success 200 {object} controllers.TestRunListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /test-runs [get]
func (c *TestRunController) ListTestRuns(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	st, err := c.Service.List(r.Context(), params)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, st)
}

// GetTestRun godoc
// @Summary Get a test run with its steps
// @Tags test-runs
// @Produce json
// @Param testRunID path string true "Test run ID"
// @Success 200 {object} controllers.TestRunSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /test-runs/{testRunID} [get]
func (c *TestRunController) GetTestRun(w http.ResponseWriter, r *http.Request) {
	testRunID := r.PathValue("testRunID")
	if testRunID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testRunID")
		return
	}
	run, err := c.Service.Get(r.Context(), testRunID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, run)
}
