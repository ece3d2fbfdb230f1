// Package api exposes the prediction service over HTTP.
package api

import (
	"net/http"

	"career-predictor/internal/common/config"
	"career-predictor/internal/common/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP surface:
//
//	POST /predict   rate limited when server.rate_limit.enabled
//	GET  /health
//	GET  /metrics
func NewRouter(cfg config.ServerConfig, h *Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Instrument(logger.ForComponent(log, "http")))
	r.Use(Recover(h.errors))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         86400,
	}))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			r.Use(httprate.Limit(
				cfg.RateLimit.Requests,
				config.GetDuration(cfg.RateLimit.Window),
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(tooManyRequests),
			))
		}
		r.Post("/predict", h.Predict)
	})

	return r
}
