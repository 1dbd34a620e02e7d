package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip, h.withTimeout)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	// vault routes, scoped to the bearer token owner
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/passwords", h.listPasswords)
		r.Post("/api/passwords", h.addPassword)
		r.Get("/api/passwords/search", h.searchPasswords)
		r.Post("/api/passwords/{id}", h.getPassword)
		r.Put("/api/passwords/{id}", h.updatePassword)
		r.Delete("/api/passwords/{id}", h.deletePassword)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
