// internal/app/features/subcategories/routes.go
package subcategories

import "github.com/go-chi/chi/v5"

// Routes is mounted at /subcategories.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeListAll)
	r.Get("/{parentID}/{id}", h.ServeGet)
	r.Patch("/{parentID}/{id}", h.HandleUpdate)
	r.Delete("/{parentID}/{id}", h.HandleDelete)
	return r
}

// Nested registers the per-category routes on the categories router.
func (h *Handler) Nested(r chi.Router) {
	r.Get("/{domain}/{id}/subcategories", h.ServeListForParent)
	r.Post("/{domain}/{id}/subcategories", h.HandleCreate)
}
