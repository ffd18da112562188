package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(userMiddleware)
		if s.Limiter != nil {
			r.Use(s.Limiter.Middleware)
		}

		r.Get("/cards/due", s.handleDueCards)
		r.Get("/cards", s.handleListCards)
		r.Post("/cards", s.handleCreateCard)
		r.Post("/cards/import", s.handleImportCards)
		r.Get("/cards/{id}", s.handleGetCard)
		r.Put("/cards/{id}", s.handleUpdateCard)
		r.Delete("/cards/{id}", s.handleDeleteCard)
		r.Post("/cards/{id}/review", s.handleReviewCard)

		r.Get("/hierarchy", s.handleListHierarchy)
		r.Post("/hierarchy", s.handleCreateHierarchy)

		r.Get("/stats/streak", s.handleStreak)
		r.Get("/stats/heatmap", s.handleHeatmap)
		r.Get("/stats/summary", s.handleSummary)
	})
	return r
}
