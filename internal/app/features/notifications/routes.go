// internal/app/features/notifications/routes.go
package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /notifications. sendMW wraps only the send route.
func Routes(h *Handler, sendMW ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeHistory)
	r.With(sendMW...).Post("/", h.HandleSend)
	return r
}
