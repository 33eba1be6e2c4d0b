// @title Bugninja Platform Dashboard API
// @version 1.0
// @description Dashboard service for the Bugninja browser testing platform: projects, test cases, test runs and project settings, proxied to the Bugninja backend with paginated list state.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"bugninjaplatform/config"
	_ "bugninjaplatform/docs"
	"bugninjaplatform/internal/adapters/bugninja"
	deliveryhttp "bugninjaplatform/internal/delivery/http"
	"bugninjaplatform/internal/delivery/http/controllers"
	"bugninjaplatform/internal/delivery/http/middleware"
	"bugninjaplatform/internal/metrics"
	"bugninjaplatform/internal/repository/postgres"
	"bugninjaplatform/internal/selection"
	"bugninjaplatform/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load first: .env may carry GO_ENV and LOG_LEVEL for the logger.
	cfg, err := config.Load()
	if err != nil {
		config.NewLoggerTo(os.Stderr).Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to prepare database schema", "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	client := bugninja.NewClient(cfg.APIBaseURL,
		bugninja.WithTimeout(cfg.APITimeout),
		bugninja.WithLogger(logger),
		bugninja.WithMetrics(m),
		bugninja.WithRequestInterceptor(middleware.ForwardRequestID),
	)
	api := bugninja.NewAPI(client)

	store := selection.NewStore(postgres.NewPreferenceRepository(db), logger)
	projectService := services.NewProjectService(api, store, cfg.ProjectPageSize, m, logger)
	testCaseService := services.NewTestCaseService(api, store, cfg.TestCasePageSize, m, logger)
	testRunService := services.NewTestRunService(api, store, cfg.TestRunPageSize, m, logger)
	settingsService := services.NewSettingsService(api, store)

	if p, err := projectService.InitSelection(ctx); err != nil {
		logger.Warn("could not restore project selection", "err", err)
	} else if p != nil {
		logger.Info("project selected", "project_id", p.ID, "project", p.Name)
	}

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Projects:  controllers.NewProjectController(logger, projectService),
		TestCases: controllers.NewTestCaseController(logger, testCaseService, testRunService),
		TestRuns:  controllers.NewTestRunController(logger, testRunService),
		Settings:  controllers.NewSettingsController(logger, settingsService),
	}, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.NewHandler(mux, logger, m, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.APITimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard server starting", "addr", srv.Addr, "env", cfg.Environment, "backend", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}
	logger.Info("dashboard server stopped")
}
