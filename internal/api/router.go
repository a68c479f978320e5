package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/hermes"
	"github.com/MikeSquared-Agency/Frontier/internal/metrics"
	"github.com/MikeSquared-Agency/Frontier/internal/store"
)

func NewRouter(s store.Store, pub *hermes.Publisher, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimit))

	frontier := NewFrontierHandler(pub, m, cfg.Frontier)
	datasets := NewDatasetsHandler(s, pub, m, cfg.Frontier, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/frontier", frontier.Compute)
		r.Post("/lookup", frontier.Lookup)

		r.Post("/datasets", datasets.Create)
		r.Get("/datasets", datasets.List)
		r.Get("/datasets/{id}", datasets.Get)
		r.Get("/datasets/{id}/frontier", datasets.Frontier)
		r.Get("/datasets/{id}/lookup", datasets.Lookup)
		r.Get("/datasets/{id}/plot", datasets.Plot)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Delete("/datasets/{id}", datasets.Delete)
		})
	})

	return r
}

// NewMetricsRouter serves health and the metrics gathered from g.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
