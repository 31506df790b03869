package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"reviewdash/internal/config"
	"reviewdash/internal/dataset"
	apierrors "reviewdash/internal/errors"
	"reviewdash/internal/infrastructure"
	customMiddleware "reviewdash/internal/middleware"
	"reviewdash/internal/services"
	handlers "reviewdash/internal/transport/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	VERSION = "v1.0.0"
	AppName = "Review Dashboard - Healthcare Facility Review Analytics"
)

// BuildTime is set at compile time via ldflags
var BuildTime = ""

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Paths            *config.Paths
	Router           *chi.Mux
	Server           *http.Server
	Table            *dataset.Table
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.AppMetrics
	FrontendFS       fs.FS
}

// NewApplication creates a new application instance. The review report
// is loaded eagerly: a missing file or broken schema fails startup
// before the server ever binds its port.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		FrontendFS:    frontendFS,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the review table and wires the services
func (a *Application) initializeServices() error {
	table, err := dataset.Load(a.Paths.ReportFile, a.Logger)
	if err != nil {
		var schemaErr *dataset.SchemaError
		switch {
		case errors.Is(err, dataset.ErrFileNotFound):
			return fmt.Errorf("review report not found at %s: %w", a.Paths.ReportFile, err)
		case errors.As(err, &schemaErr):
			return fmt.Errorf("review report rejected: %w", err)
		default:
			return fmt.Errorf("failed to load review report: %w", err)
		}
	}
	a.Table = table

	dashboardService, err := services.NewDashboardService(table, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard service: %w", err)
	}
	a.DashboardService = dashboardService

	a.HealthService = services.NewHealthService(VERSION, BuildTime, a.Paths, dashboardService, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID → RealIP → OTel → Logger → Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
		a.Metrics = otelMiddleware.Metrics()
		a.recordDatasetMetrics()
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)
	a.setupFrontendRoutes(r)

	// Prometheus scrape endpoint stays outside the JSON content-type group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)
	})
}

// setupFrontendRoutes serves the embedded dashboard page
func (a *Application) setupFrontendRoutes(r chi.Router) {
	if a.FrontendFS == nil {
		a.Logger.Warn("Frontend filesystem not available, serving API only")
		return
	}

	r.Get("/*", a.serveFrontend(a.FrontendFS))
}

// serveFrontend serves files from the embedded frontend, falling back
// to index.html for unmatched paths
func (a *Application) serveFrontend(frontendFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := path.Clean(r.URL.Path)

		if urlPath != "/" {
			exactPath := strings.TrimPrefix(urlPath, "/")
			if file, err := frontendFS.Open(exactPath); err == nil {
				defer file.Close()

				if stat, statErr := file.Stat(); statErr == nil && !stat.IsDir() {
					setContentTypeByExtension(w, exactPath)
					w.Header().Set("Cache-Control", "public, max-age=86400")
					io.Copy(w, file)
					return
				}
			}
		}

		indexFile, err := frontendFS.Open("index.html")
		if err != nil {
			a.Logger.ErrorContext(r.Context(), "Failed to open index.html",
				slog.String("error", err.Error()),
				slog.String("path", urlPath))
			http.Error(w, "Frontend not available", http.StatusServiceUnavailable)
			return
		}
		defer indexFile.Close()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		io.Copy(w, indexFile)
	}
}

func setContentTypeByExtension(w http.ResponseWriter, name string) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".json":
		w.Header().Set("Content-Type", "application/json")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".ico":
		w.Header().Set("Content-Type", "image/x-icon")
	}
}

// getCORSConfig returns the CORS configuration
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	origins := []string{
		fmt.Sprintf("http://%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		fmt.Sprintf("http://localhost:%d", a.Config.Server.Port),
	}
	origins = append(origins, a.Config.Security.AllowedOrigins...)

	return customMiddleware.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// recordDatasetMetrics publishes the load statistics as gauges
func (a *Application) recordDatasetMetrics() {
	if a.Metrics == nil || a.Table == nil {
		return
	}

	ctx := context.Background()
	stats := a.Table.Stats
	a.Metrics.DatasetRowsLoaded.Record(ctx, int64(stats.RowsLoaded))
	a.Metrics.DatasetRowsFlagged.Record(ctx, int64(stats.MissingCounts+stats.UnknownTypes+stats.UnknownCategories))
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level),
		slog.Int("records", a.Table.Len()))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://%s", a.Server.Addr)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	// Give in-flight requests a moment before shutdown begins
	time.Sleep(100 * time.Millisecond)

	return a.Stop(context.Background())
}
