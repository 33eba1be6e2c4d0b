package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"
)

// TestCaseRequest is the request body for POST /test-cases and PUT /test-cases/{testCaseID}.
type TestCaseRequest domain.TestCaseInput

// Validate implements Validator.
func (t TestCaseRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "name is required")
	}
	switch t.Priority {
	case "", domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical:
	default:
		errs = append(errs, "priority must be low, medium, high or critical")
	}
	return errs
}

// StartRunRequest is the request body for POST /test-cases/{testCaseID}/runs.
type StartRunRequest domain.StartRunInput

// TestCaseListSuccessResponse is the success response envelope for GET /test-cases (200).
type TestCaseListSuccessResponse struct {
	Data  domain.ListState[domain.TestCase] `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

// TestCaseSuccessResponse is the success response envelope for single test case endpoints.
type TestCaseSuccessResponse struct {
	Data  *domain.TestCase  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TestCaseController struct {
	Logger  *slog.Logger
	Service domain.TestCaseService
	Runs    domain.TestRunService
}

func NewTestCaseController(logger *slog.Logger, svc domain.TestCaseService, runs domain.TestRunService) *TestCaseController {
	return &TestCaseController{
		Logger:  logger,
		Service: svc,
		Runs:    runs,
	}
}

// ListTestCases godoc
// @Summary List test cases of the selected project
// @Description Returns the current page of test cases. The list is idle (data null) while no project is selected.
// @Tags test-cases
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Param search query string false "Search text"
// @Param sort_order query string false "asc or desc"
// @Param priority query string false "low, medium, high or critical; empty clears"
// @Param category query string false "Category; empty clears"
// @Param refresh query bool false "Refetch even if nothing changed"
// @Success 200 {object} controllers.TestCaseListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /test-cases [get]
func (c *TestCaseController) ListTestCases(w http.ResponseWriter, r *http.Request) {
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

// CreateTestCase godoc
// @Summary Create a test case in the selected project
// @Tags test-cases
// @Accept json
// @Produce json
// @Param testCase body TestCaseRequest true "Test case data"
// @Success 201 {object} controllers.TestCaseSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no project selected)"
// @Router /test-cases [post]
func (c *TestCaseController) CreateTestCase(w http.ResponseWriter, r *http.Request) {
	var req TestCaseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tc, err := c.Service.Create(r.Context(), domain.TestCaseInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tc)
}

// GetTestCase godoc
// @Summary Get a test case
// @Tags test-cases
// @Produce json
// @Param testCaseID path string true "Test case ID"
// @Success 200 {object} controllers.TestCaseSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /test-cases/{testCaseID} [get]
func (c *TestCaseController) GetTestCase(w http.ResponseWriter, r *http.Request) {
	testCaseID := r.PathValue("testCaseID")
	if testCaseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testCaseID")
		return
	}
	tc, err := c.Service.Get(r.Context(), testCaseID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tc)
}

// UpdateTestCase godoc
// @Summary Update a test case
// @Tags test-cases
// @Accept json
// @Produce json
// @Param testCaseID path string true "Test case ID"
// @Param testCase body TestCaseRequest true "Test case data"
// @Success 200 {object} controllers.TestCaseSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /test-cases/{testCaseID} [put]
func (c *TestCaseController) UpdateTestCase(w http.ResponseWriter, r *http.Request) {
	testCaseID := r.PathValue("testCaseID")
	if testCaseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testCaseID")
		return
	}
	var req TestCaseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tc, err := c.Service.Update(r.Context(), testCaseID, domain.TestCaseInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tc)
}

// DeleteTestCase godoc
// @Summary Delete a test case
// @Description Removes the test case from the list immediately; the list is refetched if the backend refuses.
// @Tags test-cases
// @Produce json
// @Param testCaseID path string true "Test case ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /test-cases/{testCaseID} [delete]
func (c *TestCaseController) DeleteTestCase(w http.ResponseWriter, r *http.Request) {
	testCaseID := r.PathValue("testCaseID")
	if testCaseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testCaseID")
		return
	}
	if err := c.Service.Delete(r.Context(), testCaseID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	writeDeleted(w)
}

// ListTestCaseRuns godoc
// @Summary List runs of a test case
// @Description Scopes the test run list to the test case. If the test case no longer exists the filter is dropped.
// @Tags test-cases
// @Produce json
// @Param testCaseID path string true "Test case ID"
// @Param page query int false "Page (1-based)"
// @Param status query string false "Run status; empty clears"
// @Success 200 {object} controllers.TestRunListSuccessResponse
// @Router /test-cases/{testCaseID}/runs [get]
func (c *TestCaseController) ListTestCaseRuns(w http.ResponseWriter, r *http.Request) {
	testCaseID := r.PathValue("testCaseID")
	if testCaseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testCaseID")
		return
	}
	params, ok := listParams(w, r)
	if !ok {
		return
	}
	params.TestCase = &testCaseID
	st, err := c.Runs.List(r.Context(), params)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, st)
}

// StartTestRun godoc
// @Summary Start a run of a test case
// @Tags test-cases
// @Accept json
// @Produce json
// @Param testCaseID path string true "Test case ID"
// @Param run body StartRunRequest true "Browser configuration to use"
// @Success 201 {object} controllers.TestRunSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /test-cases/{testCaseID}/runs [post]
func (c *TestCaseController) StartTestRun(w http.ResponseWriter, r *http.Request) {
	testCaseID := r.PathValue("testCaseID")
	if testCaseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing testCaseID")
		return
	}
	var req StartRunRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	run, err := c.Runs.Start(r.Context(), testCaseID, domain.StartRunInput(req))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, run)
}
