package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feedline-dev/feedline/internal/middleware"
	"github.com/feedline-dev/feedline/internal/middleware/metrics"
	"github.com/feedline-dev/feedline/internal/middleware/ratelimiter"
	"github.com/feedline-dev/feedline/internal/setup"
)

// New creates and configures the router with all routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	// CORS for the SPA frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{deps.Config.Public.CorsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Use(metrics.Middleware)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", deps.Handler.Health)
	r.Get("/ready", deps.Handler.Ready)

	// uploaded images are served as-is
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Media.Root()))))

	// credential endpoints get a per-IP bucket: burst of 5, one token per 2s
	authLimiter := ratelimiter.New(0.5, 5, time.Hour)

	h := deps.Handler
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(authLimiter))
			r.Post("/auth/signup", h.Signup)
			r.Post("/auth/login", h.Login)
		})

		// everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.NeedAuth(deps.Jwt))

			r.Get("/auth/status", h.GetStatus)
			r.Put("/auth/status", h.UpdateStatus)

			r.Get("/feed/posts", h.GetPosts)
			r.Post("/feed/posts", h.CreatePost)
			r.Get("/feed/posts/{postId}", h.GetPost)
			r.Put("/feed/posts/{postId}", h.UpdatePost)
			r.Delete("/feed/posts/{postId}", h.DeletePost)
		})
	})

	return r
}
