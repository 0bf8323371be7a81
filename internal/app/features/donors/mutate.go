// internal/app/features/donors/mutate.go
package donors

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// HandleCreate handles POST /donors.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode donor", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, req.donor())
	if err != nil {
		h.ErrLog.Handle(w, r, "create donor", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate handles PATCH /donors/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.DonorPatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode donor patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update donor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /donors/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.ErrLog.Handle(w, r, "delete donor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
