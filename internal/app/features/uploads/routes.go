// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// Routes is mounted at /uploads.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{folder}", h.HandleUpload)
	return r
}
