package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"bugninjaplatform/internal/delivery/http/controllers"
	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/delivery/http/middleware"
	"bugninjaplatform/internal/metrics"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Projects  *controllers.ProjectController
	TestCases *controllers.TestCaseController
	TestRuns  *controllers.TestRunController
	Settings  *controllers.SettingsController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Projects and selection
	mux.HandleFunc("GET /projects", c.Projects.ListProjects)
	mux.HandleFunc("POST /projects", c.Projects.CreateProject)
	mux.HandleFunc("GET /projects/selected", c.Projects.GetSelectedProject)
	mux.HandleFunc("PUT /projects/selected", c.Projects.SelectProject)
	mux.HandleFunc("GET /projects/{projectID}", c.Projects.GetProject)
	mux.HandleFunc("PUT /projects/{projectID}", c.Projects.UpdateProject)
	mux.HandleFunc("DELETE /projects/{projectID}", c.Projects.DeleteProject)
	mux.HandleFunc("GET /projects/{projectID}/overview", c.Projects.GetProjectOverview)

	// Test cases
	mux.HandleFunc("GET /test-cases", c.TestCases.ListTestCases)
	mux.HandleFunc("POST /test-cases", c.TestCases.CreateTestCase)
	mux.HandleFunc("GET /test-cases/{testCaseID}", c.TestCases.GetTestCase)
	mux.HandleFunc("PUT /test-cases/{testCaseID}", c.TestCases.UpdateTestCase)
	mux.HandleFunc("DELETE /test-cases/{testCaseID}", c.TestCases.DeleteTestCase)
	mux.HandleFunc("GET /test-cases/{testCaseID}/runs", c.TestCases.ListTestCaseRuns)
	mux.HandleFunc("POST /test-cases/{testCaseID}/runs", c.TestCases.StartTestRun)

	// Test runs
	mux.HandleFunc("GET /test-runs", c.TestRuns.ListTestRuns)
	mux.HandleFunc("GET /test-runs/{testRunID}", c.TestRuns.GetTestRun)

	// Settings
	mux.HandleFunc("GET /settings/browser-configs", c.Settings.ListBrowserConfigs)
	mux.HandleFunc("POST /settings/browser-configs", c.Settings.CreateBrowserConfig)
	mux.HandleFunc("PUT /settings/browser-configs/{configID}", c.Settings.UpdateBrowserConfig)
	mux.HandleFunc("DELETE /settings/browser-configs/{configID}", c.Settings.DeleteBrowserConfig)
	mux.HandleFunc("GET /settings/secrets", c.Settings.ListSecrets)
	mux.HandleFunc("POST /settings/secrets", c.Settings.CreateSecret)
	mux.HandleFunc("PUT /settings/secrets/{secretID}", c.Settings.UpdateSecret)
	mux.HandleFunc("DELETE /settings/secrets/{secretID}", c.Settings.DeleteSecret)

	// Operational
	mux.HandleFunc("GET /healthz", healthz)
	mux.Handle("GET /metrics", m.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the middleware chain. Metrics sits
// directly around the mux so it sees the matched route pattern.
func NewHandler(mux http.Handler, logger *slog.Logger, m *metrics.Metrics, allowedOrigins []string) http.Handler {
	var h http.Handler = mux
	h = middleware.Metrics(m, h)
	h = middleware.CORS(allowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.RequestID(h)
}

// healthz godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func healthz(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
