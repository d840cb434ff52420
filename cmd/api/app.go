package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geonet-geomatica/Repositorio/internal/config"
	"github.com/geonet-geomatica/Repositorio/internal/metrics"
	"github.com/geonet-geomatica/Repositorio/internal/middleware"
	"github.com/geonet-geomatica/Repositorio/internal/stations"
	"github.com/geonet-geomatica/Repositorio/internal/wfs"

	_ "github.com/geonet-geomatica/Repositorio/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	logger         *slog.Logger
	stationService stations.Service
	dispatcher     *wfs.Dispatcher
	metrics        *metrics.Metrics
	cfg            *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	m := metrics.New()

	stationSvc, err := stations.NewService(cfg, m, logger)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, logger, stationSvc, m), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, stationSvc stations.Service, m *metrics.Metrics) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(middleware.DefaultLoggerConfig(logger)))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS())

	app := &App{
		router:         router,
		logger:         logger,
		stationService: stationSvc,
		dispatcher:     wfs.NewDispatcher(newTranslator(cfg, stationSvc.AttributeNames()), stationSvc, logger),
		metrics:        m,
		cfg:            cfg,
	}

	app.registerRoutes()

	return app
}

func newTranslator(cfg *config.Config, attributes []string) *wfs.Translator {
	opts := wfs.DefaultOptions()
	if cfg.WFS.TypeName != "" {
		opts.TypeName = cfg.WFS.TypeName
	}
	if cfg.WFS.SRSName != "" {
		opts.SRSName = cfg.WFS.SRSName
	}
	if cfg.WFS.Title != "" {
		opts.Title = cfg.WFS.Title
	}
	if cfg.WFS.Abstract != "" {
		opts.Abstract = cfg.WFS.Abstract
	}
	opts.Attributes = attributes
	return wfs.NewTranslator(opts)
}

// Run serves HTTP on addr until ctx is done, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
