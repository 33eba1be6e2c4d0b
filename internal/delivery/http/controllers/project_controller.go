package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"
)

// ProjectRequest is the request body for POST /projects and PUT /projects/{projectID}.
type ProjectRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DefaultStartURL string `json:"defaultStartUrl"`
}

// Validate implements Validator.
func (p ProjectRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

func (p ProjectRequest) input() domain.ProjectInput {
	return domain.ProjectInput{Name: p.Name, Description: p.Description, DefaultStartURL: p.DefaultStartURL}
}

// SelectProjectRequest is the request body for PUT /projects/selected.
type SelectProjectRequest struct {
	ProjectID string `json:"projectId"`
}

// Validate implements Validator.
func (s SelectProjectRequest) Validate() []string {
	if strings.TrimSpace(s.ProjectID) == "" {
		return []string{"projectId is required"}
	}
	return nil
}

// ProjectListSuccessResponse is the success response envelope for GET /projects (200).
type ProjectListSuccessResponse struct {
	Data  domain.ListState[domain.Project] `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// ProjectSuccessResponse is the success response envelope for single-project endpoints.
type ProjectSuccessResponse struct {
	Data  *domain.Project   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProjectOverviewSuccessResponse is the success response envelope for GET /projects/{projectID}/overview (200).
type ProjectOverviewSuccessResponse struct {
	Data  *domain.ProjectOverview `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
}

func NewProjectController(logger *slog.Logger, svc domain.ProjectService) *ProjectController {
	return &ProjectController{
		Logger:  logger,
		Service: svc,
	}
}

// ListProjects godoc
// @Summary List projects
// @Description Returns the current page of projects with pagination state. Query changes reset the page to 1 unless page is given.
// @Tags projects
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Param search query string false "Search text"
// @Param sort_order query string false "asc or desc"
// @Param refresh query bool false "Refetch even if nothing changed"
// @Success 200 {object} controllers.ProjectListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /projects [get]
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
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

// CreateProject godoc
// @Summary Create a project
// @Description Creates a project. The first project created is selected automatically.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body ProjectRequest true "Project data"
// @Success 201 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /projects [post]
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.Create(r.Context(), req.input())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// GetSelectedProject godoc
// @Summary Get the selected project
// @Description Returns the current project. If none is selected, the persisted selection is restored or the first project is picked.
// @Tags projects
// @Produce json
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no projects exist)"
// @Router /projects/selected [get]
func (c *ProjectController) GetSelectedProject(w http.ResponseWriter, r *http.Request) {
	if p, ok := c.Service.Selected(); ok {
		helpers.WriteJSONSuccess(w, http.StatusOK, p)
		return
	}
	p, err := c.Service.InitSelection(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if p == nil {
		writeError(c.Logger, w, r, domain.ErrNoProjectSelected)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// SelectProject godoc
// @Summary Select a project
// @Description Makes the project current and persists the choice. Dependent lists are rescoped to it.
// @Tags projects
// @Accept json
// @Produce json
// @Param selection body SelectProjectRequest true "Project to select"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /projects/selected [put]
func (c *ProjectController) SelectProject(w http.ResponseWriter, r *http.Request) {
	var req SelectProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.Select(r.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "project not found")
			return
		}
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /projects/{projectID} [get]
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	p, err := c.Service.Get(r.Context(), projectID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body ProjectRequest true "Project data"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /projects/{projectID} [put]
func (c *ProjectController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.Update(r.Context(), projectID, req.input())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Deletes the project. If it was selected, the first remaining project becomes selected.
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /projects/{projectID} [delete]
func (c *ProjectController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	if err := c.Service.Delete(r.Context(), projectID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	writeDeleted(w)
}

// GetProjectOverview godoc
// @Summary Project overview
// @Description Returns the project with its test case, test run and failed run counts.
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} controllers.ProjectOverviewSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /projects/{projectID}/overview [get]
func (c *ProjectController) GetProjectOverview(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	ov, err := c.Service.Overview(r.Context(), projectID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ov)
}
