package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/nmoreira/portfolio-backend/config"
)

// setupRoutes mounts the health endpoint and the versioned project routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, cfg *config.Config) {
	r.Get("/health", handlers.healthHandler.check())

	r.Route(cfg.APIPrefix+"/projects", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.projectHandler.listProjects())
		r.Post("/", handlers.projectHandler.createProject())
		r.Get("/{projectID}", handlers.projectHandler.getProject())
		r.Put("/{projectID}", handlers.projectHandler.updateProjectFull())
		r.Patch("/{projectID}", handlers.projectHandler.updateProjectPartial())
		r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
	})
}
