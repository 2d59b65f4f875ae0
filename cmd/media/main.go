package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursecast/internal/core/services"
	httphandlers "coursecast/internal/handlers/http"
	"coursecast/internal/infrastructure/middleware"
	"coursecast/internal/infrastructure/monitoring"
	"coursecast/internal/infrastructure/repositories"
	"coursecast/internal/infrastructure/seed"
	"coursecast/internal/infrastructure/storage"
	"coursecast/internal/infrastructure/streaming"
	"coursecast/pkg/config"
	"coursecast/pkg/logger"
	"coursecast/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const tokenTTL = 15 * time.Minute

func main() {
	startTime := time.Now()

	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/coursecast/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		cfg = config.DefaultConfig()
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Tracing (no-op unless enabled)
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "coursecast",
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Repositories (Redis with memory fallback)
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	catalogRepo := repoFactory.CreateCatalogRepository()
	entitlementRepo := repoFactory.CreateEntitlementRepository()

	blobStore, err := storage.NewFilesystemBlobStore(cfg.Storage.Root, log)
	if err != nil {
		log.Fatalw("failed to open blob store", "error", err, "root", cfg.Storage.Root)
	}

	// Services
	authService := services.NewAuthService(cfg.Auth.JWTSecret, tokenTTL)
	entitlementService := services.NewEntitlementService(entitlementRepo, log)
	mediaService := services.NewMediaService(catalogRepo, entitlementService, blobStore, log)

	// Optional dev/standalone seeding
	if cfg.Catalog.SeedFile != "" {
		fixture, err := seed.Load(cfg.Catalog.SeedFile)
		if err != nil {
			log.Fatalw("failed to load seed fixture", "error", err, "path", cfg.Catalog.SeedFile)
		}
		if err := seed.Apply(context.Background(), fixture, catalogRepo, entitlementRepo, log); err != nil {
			log.Fatalw("failed to apply seed fixture", "error", err)
		}
	}

	metrics := monitoring.NewCollector(prometheus.DefaultRegisterer)
	pipeline := streaming.NewPipeline(cfg.Storage.BufferSize, log)
	mediaHandler := httphandlers.NewMediaHandler(mediaService, pipeline, metrics, log)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.NewRateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	mediaHandler.SetupRoutes(router, middleware.RequireAuth(authService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := repoFactory.HealthCheck(ctx); err != nil {
			c.JSON(503, gin.H{
				"status":       "not_ready",
				"timestamp":    time.Now(),
				"dependencies": "unhealthy",
				"error":        err.Error(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":       "ready",
			"timestamp":    time.Now(),
			"dependencies": "ok",
		})
	})

	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting CourseCast media server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down CourseCast media server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error shutting down tracer provider", "error", err)
	}

	if err := repoFactory.Close(); err != nil {
		log.Errorw("Error closing repository factory", "error", err)
	}

	log.Info("CourseCast media server stopped")
}
