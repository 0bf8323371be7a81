// internal/app/features/subcategories/list.go
package subcategories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// ServeListAll handles GET /subcategories: every sub-category of every
// category, annotated with the parent's name.
func (h *Handler) ServeListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	subs, err := h.Store.ListAll(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "list all sub-categories", err)
		return
	}
	writeList(w, subs)
}

// ServeListForParent handles GET /categories/{domain}/{id}/subcategories.
func (h *Handler) ServeListForParent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := h.nestedParent(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Store.List(ctx, parentID)
	if err != nil {
		h.ErrLog.Handle(w, r, "list sub-categories", err)
		return
	}
	writeList(w, subs)
}

// ServeGet handles GET /subcategories/{parentID}/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	parentID, id := chi.URLParam(r, "parentID"), chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Store.GetByID(ctx, parentID, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get sub-category", err)
		return
	}
	if sub == nil {
		h.ErrLog.NotFound(w, "sub-category", id)
		return
	}
	jsonio.Write(w, http.StatusOK, sub)
}

func writeList(w http.ResponseWriter, subs []models.SubCategory) {
	if subs == nil {
		subs = []models.SubCategory{}
	}
	jsonio.Write(w, http.StatusOK, subs)
}
