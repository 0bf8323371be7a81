// internal/app/features/vouchers/routes.go
package vouchers

import "github.com/go-chi/chi/v5"

// Routes is mounted at /vouchers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/code", h.ServeCode)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
