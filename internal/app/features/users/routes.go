// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes is mounted at /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/vouchers", h.ServeVouchers)
	return r
}
