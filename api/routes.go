package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/models"
)

// setupAPIRoutes mounts every /api route. Reads of site content and inquiry
// submission are public; everything else needs an admin token.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Get("/csrf-token", handlers.healthHandler.csrfToken())
	r.Post("/auth/login", handlers.authHandler.login())

	mountResource(r, string(models.ResourceTeam), handlers.teamHandler, auth)
	mountResource(r, string(models.ResourceProjects), handlers.projectHandler, auth)
	mountResource(r, string(models.ResourceSlides), handlers.slideHandler, auth)
	mountResource(r, string(models.ResourceCategories), handlers.categoryHandler, auth)

	r.Route("/inquiries", func(r chi.Router) {
		r.Post("/", handlers.inquiryHandler.submitInquiry())

		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Get("/", handlers.inquiryHandler.listInquiries())
			r.Get("/stats", handlers.inquiryHandler.getStats())
			r.Get("/{id}", handlers.inquiryHandler.getInquiry())
			r.Get("/{id}/activity", handlers.inquiryHandler.getActivity())
			r.Patch("/{id}/status", handlers.inquiryHandler.changeStatus())
			r.Delete("/{id}", handlers.inquiryHandler.deleteInquiry())
		})
	})

	r.Get("/settings", handlers.settingsHandler.getSettings())
	r.With(auth.authenticate).Put("/settings", handlers.settingsHandler.updateSettings())

	r.With(auth.authenticate).Post("/upload", handlers.uploadHandler.uploadImage())
}

func mountResource[T any](r chi.Router, path string, h resourceHandler[T], auth authMiddleware) {
	r.Route("/"+path, func(r chi.Router) {
		r.Get("/", h.getAll())
		r.Get("/{id}", h.get())

		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Post("/", h.create())
			r.Put("/{id}", h.update())
			r.Delete("/{id}", h.delete())
		})
	})
}
