package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", handlers.ListCatalog(d))
		r.Post("/", handlers.CreateEntry(d))
		r.Post("/clear", handlers.ClearCatalog(d))
		r.Delete("/{id}", handlers.DeleteEntry(d))
		r.Get("/active", handlers.Active(d))
		r.Put("/active", handlers.SetActive(d))
	})
}
