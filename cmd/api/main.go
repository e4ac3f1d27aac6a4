package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/docs"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/handler"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/middleware"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/router"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/jobs"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/logger"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"go.uber.org/zap"
)

// @title ABC Retail Customer API
// @version 1.0
// @description Customer records with photos, an audit queue and CSV log export. Every page also answers JSON when Accept asks for it.

// @contact.name ABC Retail Support
// @contact.email support@abcretail.example

// @host localhost:8080
// @BasePath /

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	if basicCfg.App.PublicHost != "" {
		docs.SwaggerInfo.Host = basicCfg.App.PublicHost
	}

	// In staging/production with USE_AZURE_KEY_VAULT=true, credentials come from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	collab, err := newCollaborators(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer collab.Close()

	// Services
	auditService := service.NewAuditLogService(collab.queue, collab.archive, time.Now, log.Named("audit"))
	customerService := service.NewCustomerService(collab.records, collab.photos, auditService, nil, log.Named("customers"))

	// Handlers
	views, err := handler.NewViews(cfg.App.Name, log)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	customerHandler := handler.NewCustomerHandler(customerService, views, cfg.Storage.MaxUploadBytes(), log)
	logHandler := handler.NewLogHandler(auditService, views, log)

	// Middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	var metrics *middleware.Metrics
	if cfg.Server.EnableMetrics {
		metrics = middleware.NewMetrics("abc_retail")
	}

	rt := router.NewRouter(
		cfg,
		log,
		rateLimiter,
		metrics,
		customerHandler,
		logHandler,
		collab.checks,
		collab.photoDir,
	)

	// Scheduled log export
	var scheduler *jobs.Scheduler
	if cfg.Jobs.LogExportEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterLogExportJob(
			scheduler,
			auditService,
			cfg.Jobs.LogExportCron,
			cfg.Jobs.LogExportTimeoutDuration(),
			log,
		); err != nil {
			log.Error("Failed to register log export job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Scheduled log export disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
