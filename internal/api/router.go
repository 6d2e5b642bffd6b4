package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/driftlab/sponge/internal/api/handlers"
	mw "github.com/driftlab/sponge/internal/api/middleware"
	"github.com/driftlab/sponge/internal/buildconfig"
	"github.com/driftlab/sponge/internal/config"
	"github.com/driftlab/sponge/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the sponge service.
type App struct {
	Router *chi.Mux
	Sponge *service.SpongeService

	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(svc *service.SpongeService, logger *zap.Logger) *App {
	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sponge:    svc,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	spongeHandler := handlers.NewSpongeHandler(svc)

	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/interactions", spongeHandler.ProcessInteraction)

		r.Get("/state", spongeHandler.GetState)
		r.Get("/opinions", spongeHandler.GetOpinions)
		r.Get("/beliefs", spongeHandler.GetBeliefs)
		r.Get("/shifts", spongeHandler.GetShifts)
		r.Get("/staged", spongeHandler.GetStaged)
		r.Get("/signature", spongeHandler.GetSignature)

		r.Post("/insights", spongeHandler.RecordInsight)
		r.Get("/insights", spongeHandler.GetInsights)

		r.Get("/contradictions", spongeHandler.GetContradictions)
		r.Get("/entrenched", spongeHandler.GetEntrenched)

		r.Post("/reflect", spongeHandler.Reflect)
		r.Post("/reset", spongeHandler.Reset)
	})

	return app
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"sponge": map[string]any{
				"version":           app.Sponge.Version(),
				"interaction_count": app.Sponge.InteractionCount(),
			},
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
