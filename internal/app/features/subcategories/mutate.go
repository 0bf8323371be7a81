// internal/app/features/subcategories/mutate.go
package subcategories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /categories/{domain}/{id}/subcategories.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	parentID, ok := h.nestedParent(w, r)
	if !ok {
		return
	}
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode sub-category", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, parentID, models.SubCategory{
		Name:        htmlsanitize.Text(req.Name),
		Description: htmlsanitize.Text(req.Description),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.ErrLog.Handle(w, r, "create sub-category", err)
		return
	}
	h.Log.Info("sub-category created", zap.String("parent", parentID), zap.String("id", id))
	jsonio.Write(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate handles PATCH /subcategories/{parentID}/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.SubCategoryPatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode sub-category patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, chi.URLParam(r, "parentID"), chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update sub-category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /subcategories/{parentID}/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	parentID, id := chi.URLParam(r, "parentID"), chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Delete(ctx, parentID, id); err != nil {
		h.ErrLog.Handle(w, r, "delete sub-category", err)
		return
	}
	h.Log.Info("sub-category deleted", zap.String("parent", parentID), zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
