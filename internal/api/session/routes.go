package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.EndSession)
		r.Post("/{id}/questions", h.AskQuestion)
		r.Get("/{id}/history", h.GetHistory)
		r.Delete("/{id}/history", h.ClearHistory)
		r.Get("/{id}/export", h.ExportCurrent)
	})
}
