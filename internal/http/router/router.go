package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	_ "github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/docs" // Import generated swagger docs
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/handler"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/middleware"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// readinessTimeout bounds each dependency check on /health/ready
const readinessTimeout = 5 * time.Second

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	rateLimiter     *middleware.RateLimiter
	metrics         *middleware.Metrics
	customerHandler *handler.CustomerHandler
	logHandler      *handler.LogHandler
	// checks are pinged by the readiness probe, keyed by collaborator name
	checks map[string]storage.Pinger
	// photoDir is served under /photos/ when photos are stored locally
	photoDir string
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	rateLimiter *middleware.RateLimiter,
	metrics *middleware.Metrics,
	customerHandler *handler.CustomerHandler,
	logHandler *handler.LogHandler,
	checks map[string]storage.Pinger,
	photoDir string,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		rateLimiter:     rateLimiter,
		metrics:         metrics,
		customerHandler: customerHandler,
		logHandler:      logHandler,
		checks:          checks,
		photoDir:        photoDir,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Readiness probe (checks every collaborator that can be pinged)
	r.Get("/health/ready", rt.ready)

	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	// Swagger documentation for the JSON side of the customer pages
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	if rt.photoDir != "" {
		r.Handle("/photos/*", http.StripPrefix("/photos/", http.FileServer(http.Dir(rt.photoDir))))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/customers", http.StatusFound)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", rt.customerHandler.Index)
		r.Get("/create", rt.customerHandler.CreateForm)
		r.Post("/create", rt.customerHandler.Create)
		r.Post("/edit", rt.customerHandler.Edit)

		r.Get("/log", rt.logHandler.Log)
		r.Post("/log/export", rt.logHandler.ExportLog)

		r.Route("/{partitionKey}/{rowKey}", func(r chi.Router) {
			r.Get("/", rt.customerHandler.Details)
			r.Get("/edit", rt.customerHandler.EditForm)
			r.Get("/delete", rt.customerHandler.DeleteConfirm)
			r.Post("/delete", rt.customerHandler.Delete)
		})
	})

	return r
}

func (rt *Router) ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{}, len(rt.checks))
	allHealthy := true

	for name, pinger := range rt.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := pinger.Ping(ctx)
		cancel()

		if err != nil {
			rt.logger.Error("Readiness check failed", zap.String("service", name), zap.Error(err))
			checks[name] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
			continue
		}
		checks[name] = map[string]interface{}{
			"status": "healthy",
		}
	}

	status, statusText := http.StatusOK, "ready"
	if !allHealthy {
		status, statusText = http.StatusServiceUnavailable, "not_ready"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": statusText,
		"checks": checks,
	})
}
