package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleRegister)
	r.Post("/session", h.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAuth)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
