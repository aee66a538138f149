package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/fileflow-dev/fileflow/internal/middleware"
	"github.com/fileflow-dev/fileflow/internal/middleware/metrics"
	rl "github.com/fileflow-dev/fileflow/internal/middleware/ratelimiter"
	"github.com/fileflow-dev/fileflow/internal/setup"
)

// New creates and configures the router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	// Panics during request assembly become a 500 response instead of a
	// dropped connection; the client is never left waiting.
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h := deps.Handler

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Send endpoints: abuse throttling per IP plus a global ceiling
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.New(1.0/3, 3, 1*time.Hour), mw.GetIP)) // 1 per 3s per IP, small burst
			r.Use(mw.GlobalRateLimit(rl.Rps100()))                       // 100 global RPS
			r.Post("/send/files", h.SendFiles)
			r.Post("/send/text", h.SendText)
		})
	})

	// Avoid 404s for CORS preflight on unmatched paths
	r.MethodFunc(http.MethodOptions, "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
