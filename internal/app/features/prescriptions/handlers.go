// internal/app/features/prescriptions/handlers.go
package prescriptions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /prescriptions?categoryId=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, r.URL.Query().Get("categoryId"))
	if err != nil {
		h.ErrLog.Handle(w, r, "list prescriptions", err)
		return
	}
	if list == nil {
		list = []models.Prescription{}
	}
	jsonio.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /prescriptions/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get prescription", err)
		return
	}
	if rec == nil {
		h.ErrLog.NotFound(w, "prescription", id)
		return
	}
	jsonio.Write(w, http.StatusOK, rec)
}

// HandleCreate handles POST /prescriptions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode prescription", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, req.record())
	if err != nil {
		h.ErrLog.Handle(w, r, "create prescription", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate handles PATCH /prescriptions/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.PrescriptionPatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode prescription patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update prescription", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /prescriptions/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.ErrLog.Handle(w, r, "delete prescription", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBackfill handles POST /prescriptions/backfill.
func (h *Handler) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.ClassBatch, h.Log, "prescription backfill")
	defer cancel()

	n, err := h.Store.Backfill(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "backfill prescriptions", err)
		return
	}
	h.Log.Info("prescription names backfilled", zap.Int("updated", n))
	jsonio.Write(w, http.StatusOK, map[string]int{"updated": n})
}
