package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/httpserver/handlers"
)

func init() { Register(registerDraft) }

func registerDraft(r chi.Router, d deps.Deps) {
	r.Route("/api/draft", func(r chi.Router) {
		r.Get("/", handlers.GetDraft(d))
		r.Put("/", handlers.UpdateDraft(d))
		r.Post("/submit", handlers.SubmitDraft(d))
		r.Delete("/", handlers.CancelDraft(d))
	})
}
