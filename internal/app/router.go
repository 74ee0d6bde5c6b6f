package app

import (
	"log/slog"
	"net/http"

	"contact-service/internal/auth"
	"contact-service/internal/contact"
	"contact-service/internal/health"
	"contact-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	BasePath    string
	CORSOrigins []string
	JWTSecret   string
}

// NewRouter mounts the public contact endpoint and, when a JWT secret is
// configured, the admin API under the base path. Probes stay at the root.
func NewRouter(cfg RouterConfig, service contact.Service, db health.Pinger, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.CORS(cfg.CORSOrigins))

	health.NewHandler(db).RegisterRoutes(router)

	mount := func(r chi.Router) {
		contact.NewHandler(service, logger).RegisterRoutes(r)

		if cfg.JWTSecret == "" {
			logger.Warn("auth.jwt_secret not set, admin API disabled")
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(cfg.JWTSecret, logger))
			contact.NewAdminHandler(service, logger).RegisterRoutes(r)
		})
	}

	if cfg.BasePath == "" || cfg.BasePath == "/" {
		mount(router)
	} else {
		router.Route(cfg.BasePath, mount)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return router
}
