package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"bookings-rest-api/internal/handler"
	"bookings-rest-api/internal/middleware"
	"bookings-rest-api/pkg/apierror"
	"bookings-rest-api/pkg/response"
)

// Config holds the configuration for creating a router.
type Config struct {
	IndexHandler  *handler.IndexHandler
	ItemHandler   *handler.ItemHandler
	HealthHandler *handler.HealthHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.NotFound("endpoint not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.MethodNotAllowed(""))
	})

	if cfg.IndexHandler != nil {
		r.Get("/", cfg.IndexHandler.Index)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.HealthHandler != nil {
			r.Get("/health", cfg.HealthHandler.Health)
		}

		if cfg.ItemHandler != nil {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", cfg.ItemHandler.List)
				r.Post("/", cfg.ItemHandler.Create)
				r.Post("/bulk", cfg.ItemHandler.Bulk)
				r.Get("/country/{code}", cfg.ItemHandler.ByCountry)

				r.Route("/stats", func(r chi.Router) {
					r.Get("/top-countries", cfg.ItemHandler.TopCountries)
					r.Get("/top-hotels", cfg.ItemHandler.TopHotels)
					r.Get("/cancellations", cfg.ItemHandler.CancellationStats)
					r.Get("/average-adr", cfg.ItemHandler.AverageADR)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.ItemHandler.Get)
					r.Put("/", cfg.ItemHandler.Update)
					r.Delete("/", cfg.ItemHandler.Delete)
				})
			})
		}
	})

	return r
}
