package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint group: public, optional-auth and
// authenticated.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints
		r.Post("/auth/telegram-login", handlers.authHandler.telegramLogin())
		r.Post("/fetch", handlers.uploadHandler.fetch())
		r.Get("/projects/most-viewed", handlers.projectHandler.mostViewed())
		r.Get("/projects/most-liked", handlers.projectHandler.mostLiked())
		r.Get("/projects/search", handlers.projectHandler.searchProjects())

		// Project read behaves differently for authenticated callers but
		// never rejects anonymous ones
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.optional)
			r.Get("/projects/project/{projectID}", handlers.projectHandler.getProject())
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/uploadImage", handlers.uploadHandler.uploadImage())

			r.Post("/projects/project", handlers.projectHandler.createProject())
			r.Put("/projects/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/project/{projectID}", handlers.projectHandler.deleteProject())
			r.Get("/projects/my-projects", handlers.projectHandler.myProjects())

			r.Post("/set-project/set-like/{projectID}", handlers.engagementHandler.toggleLike())
			r.Post("/set-project/set-share/{projectID}", handlers.engagementHandler.setShare())
		})
	})
}
