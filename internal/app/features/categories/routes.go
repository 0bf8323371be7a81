// internal/app/features/categories/routes.go
package categories

import "github.com/go-chi/chi/v5"

// Routes is mounted at /categories. nested registers extra routes on the
// same router, such as the sub-categories of one category.
func Routes(h *Handler, nested ...func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Get("/{domain}", h.ServeList)
	r.Post("/{domain}", h.HandleCreate)
	r.Get("/{domain}/{id}", h.ServeGet)
	r.Patch("/{domain}/{id}", h.HandleUpdate)
	r.Delete("/{domain}/{id}", h.HandleDelete)
	for _, n := range nested {
		n(r)
	}
	return r
}
