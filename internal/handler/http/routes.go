package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/variants", h.listVariants)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.withHashCheck).Post("/api/resolve", h.resolve)
		r.Get("/api/plans", h.listPlans)
		r.Get("/api/plans/{id}", h.getPlan)
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
