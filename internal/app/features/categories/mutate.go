// internal/app/features/categories/mutate.go
package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /categories/{domain}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return
	}
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode category", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, d, req.category())
	if err != nil {
		h.ErrLog.Handle(w, r, "create category", err)
		return
	}
	h.Log.Info("category created", zap.String("domain", string(d)), zap.String("id", id))
	jsonio.Write(w, http.StatusCreated, idResponse{ID: id})
}

// HandleUpdate handles PATCH /categories/{domain}/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return
	}
	var p models.CategoryPatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode category patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, d, chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /categories/{domain}/{id}. Categories that
// still have items answer 409.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return
	}
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Delete(ctx, d, id); err != nil {
		h.ErrLog.Handle(w, r, "delete category", err)
		return
	}
	h.Log.Info("category deleted", zap.String("domain", string(d)), zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
