package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Options tunes the router beyond its handlers.
type Options struct {
	Logger          zerolog.Logger
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Post("/v1/product-info", app.GenerateProductInfo)

	r.Route("/v1/users", func(r chi.Router) {
		r.Post("/", app.CreateUser)
		r.Get("/{id}/usage", app.UserUsage)
	})

	r.Route("/v1/submissions", func(r chi.Router) {
		r.Post("/", app.CreateSubmission)
		r.Get("/", app.ListSubmissions)
		r.Get("/{id}", app.GetSubmission)
		r.Delete("/{id}", app.DeleteSubmission)
		r.Get("/{id}/download", app.DownloadSubmission)
	})

	return r
}
