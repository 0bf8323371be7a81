// internal/app/features/medicines/mutate.go
package medicines

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /medicines.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode medicine", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, req.medicine())
	if err != nil {
		h.ErrLog.Handle(w, r, "create medicine", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate handles PATCH /medicines/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.MedicinePatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode medicine patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update medicine", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /medicines/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.ErrLog.Handle(w, r, "delete medicine", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBackfill handles POST /medicines/backfill: stored records missing
// category or sub-category names get them written.
func (h *Handler) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.ClassBatch, h.Log, "medicine backfill")
	defer cancel()

	n, err := h.Store.Backfill(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "backfill medicines", err)
		return
	}
	h.Log.Info("medicine names backfilled", zap.Int("updated", n))
	jsonio.Write(w, http.StatusOK, map[string]int{"updated": n})
}
