package api

import (
	"github.com/nmoreira/portfolio-backend/config"
	"github.com/nmoreira/portfolio-backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	healthHandler  healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, cfg *config.Config) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database),
		healthHandler:  newHealthHandler(cfg.ServiceName),
	}
}
