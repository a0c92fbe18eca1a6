package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/verify", h.verify)
	})

	// routes available to any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/patients", h.createPatient)
		r.Get("/api/patients/me", h.getOwnPatient)
		r.Patch("/api/patients/{id}", h.updateOwnPatient)
		r.Delete("/api/patients/{id}", h.deleteOwnPatient)
	})

	// routes restricted to the admin role
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)

		r.Get("/api/admin/patients", h.listPatients)
		r.Get("/api/admin/patients/{id}", h.getPatient)
		r.Patch("/api/admin/patients/{id}", h.updatePatient)
		r.Delete("/api/admin/patients/{id}", h.deletePatient)
	})

	return router
}
