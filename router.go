package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mockapi/internal/auth"
)

// newRouter wires the handler, middleware and auth into a chi router.
// Mock endpoints live under basePath; /healthz and /metrics sit outside it.
func newRouter(h *Handler, verifier auth.Verifier, gatherer prometheus.Gatherer, basePath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware(h.logger))
	r.Use(metricsMiddleware(h.metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route(basePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Options("/*", handlePreflight)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(verifier, h.logger, h.metrics))
			r.Get("/", h.handleListEndpoints)
			r.Get("/{endpoint}", h.handleGetRecords)
			r.Get("/{endpoint}/config", h.handleGetConfig)
			r.Post("/{endpoint}/config", h.handleSaveConfig)
		})
	})
	return r
}
