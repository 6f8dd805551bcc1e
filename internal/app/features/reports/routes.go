package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Get("/users", h.HandleListUsers)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAuth)
		r.Post("/", h.HandleCreate)
		r.Get("/mine", h.HandleMine)
		r.Get("/{reportId}", h.HandleGet)
		r.Patch("/{reportId}", h.HandleUpdate)
		r.Delete("/{reportId}", h.HandleDelete)
	})
	return r
}
