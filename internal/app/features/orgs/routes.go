package orgs

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
		r.Use(auth.RequireOrg)

		r.Get("/", h.HandleListUsers)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)

		r.Patch("/reports/{reportId}", h.HandleModerateReportUpdate)
		r.Delete("/reports/{reportId}", h.HandleModerateReportDelete)

		r.Delete("/users/{userId}", h.HandleDeleteUser)
		r.Patch("/users/{userId}/suspend", h.HandleSuspendUser)
		r.Patch("/users/{userId}/reactivate", h.HandleReactivateUser)
	})
	return r
}
