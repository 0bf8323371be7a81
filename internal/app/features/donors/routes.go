// internal/app/features/donors/routes.go
package donors

import "github.com/go-chi/chi/v5"

// Routes is mounted at /donors.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/export.csv", h.ServeExportCSV)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
