package server

import "github.com/accountlens/accountlens/internal/server/handlers"

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(api *handlers.API) {
	s.router.Get("/api/health", handlers.HealthHandler)
	s.router.Get("/api/version", handlers.VersionHandler)
	s.router.Get("/api/platforms", api.PlatformsHandler)
	s.router.Get("/api/search", api.SearchHandler)
}
