// internal/app/features/donors/list.go
package donors

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// ServeList handles GET /donors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		h.ErrLog.Handle(w, r, "parse donor query", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "list donors", err)
		return
	}
	out := q.Apply(all)
	if out == nil {
		out = []models.Donor{}
	}
	jsonio.Write(w, http.StatusOK, out)
}

// ServeGet handles GET /donors/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get donor", err)
		return
	}
	if d == nil {
		h.ErrLog.NotFound(w, "donor", id)
		return
	}
	jsonio.Write(w, http.StatusOK, d)
}
