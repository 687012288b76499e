package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/prometheus"
	"github.com/rxprasetya/sebaran-penjualan/internal/interfaces/http/handlers"
	"github.com/rxprasetya/sebaran-penjualan/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	MapHandler      *handlers.MapHandler
	RegionsHandler  *handlers.RegionsHandler
	CoverageHandler *handlers.CoverageHandler
	BoundaryHandler *handlers.BoundaryHandler
	ThemeHandler    *handlers.ThemeHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORS    CORSOption
	Logging LoggingOption

	// Infrastructure
	Logger  logging.Logger
	Metrics *prometheus.Metrics
}

// CORSOption enables the CORS middleware when Enabled is true.
type CORSOption struct {
	Enabled bool
	Config  middleware.CORSConfig
}

// LoggingOption enables the request logging middleware when Enabled is true.
type LoggingOption struct {
	Enabled bool
	Config  middleware.LoggingConfig
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration. It wires global middleware, public health endpoints, and the
// API resource groups into a single http.Handler suitable for http.Server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS.Config))
	}
	if cfg.Logging.Enabled && cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging.Config))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// --- Public health endpoints ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	// Exposed publicly; expected to sit behind an internal firewall rule.
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	// --- Boundary documents (served at the root, matching the asset path) ---
	if cfg.BoundaryHandler != nil {
		r.Get("/geojson/{resource}", cfg.BoundaryHandler.Get)
	}

	// --- API ---
	r.Route("/api", func(api chi.Router) {
		if cfg.MapHandler != nil {
			api.Get("/map", cfg.MapHandler.Get)
		}
		if cfg.RegionsHandler != nil {
			api.Get("/regions", cfg.RegionsHandler.Get)
		}
		if cfg.ThemeHandler != nil {
			api.Get("/theme", cfg.ThemeHandler.Get)
			api.Put("/theme", cfg.ThemeHandler.Put)
		}
		registerCoverageRoutes(api, cfg.CoverageHandler)
	})

	return r
}

// registerCoverageRoutes mounts coverage area resource endpoints under
// /sales-coverage-areas.
func registerCoverageRoutes(r chi.Router, h *handlers.CoverageHandler) {
	if h == nil {
		return
	}
	r.Route("/sales-coverage-areas", func(cr chi.Router) {
		cr.Get("/", h.List)
		cr.Post("/", h.Create)

		cr.Route("/{areaID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Put("/", h.Update)
			item.Delete("/", h.Delete)
		})
	})
}
