// internal/app/features/prescriptions/routes.go
package prescriptions

import "github.com/go-chi/chi/v5"

// Routes is mounted at /prescriptions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/backfill", h.HandleBackfill)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
