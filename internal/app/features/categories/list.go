// internal/app/features/categories/list.go
package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// ServeList handles GET /categories/{domain}.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := h.Store.List(ctx, d)
	if err != nil {
		h.ErrLog.Handle(w, r, "list categories", err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	jsonio.Write(w, http.StatusOK, cats)
}

// ServeGet handles GET /categories/{domain}/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return
	}
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Store.GetByID(ctx, d, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get category", err)
		return
	}
	if c == nil {
		h.ErrLog.NotFound(w, "category", id)
		return
	}
	jsonio.Write(w, http.StatusOK, c)
}
