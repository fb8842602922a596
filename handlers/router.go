package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/NISHANTH0777/transport-backend/internal/logging"
)

// RouterConfig carries everything NewRouter mounts
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	StaticDir      string

	Routes   *RouteHandler
	Stations *StationHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP router with middleware and every endpoint
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", cfg.Health.GetHealth)
	r.Get("/healthz", Healthz)

	r.Get("/search-route", cfg.Routes.SearchRoutes)
	r.Get("/search-route/connected", cfg.Routes.SearchConnectedRoutes)
	r.Get("/stations/search", cfg.Stations.SearchStations)

	r.Route("/api/routes", func(r chi.Router) {
		r.Get("/", cfg.Routes.ListRoutes)
		r.Get("/{routeId}", cfg.Routes.GetRoute)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
