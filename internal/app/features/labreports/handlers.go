// internal/app/features/labreports/handlers.go
package labreports

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /lab-reports?categoryId=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, r.URL.Query().Get("categoryId"))
	if err != nil {
		h.ErrLog.Handle(w, r, "list lab reports", err)
		return
	}
	if list == nil {
		list = []models.LabReport{}
	}
	jsonio.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /lab-reports/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get lab report", err)
		return
	}
	if rec == nil {
		h.ErrLog.NotFound(w, "lab report", id)
		return
	}
	jsonio.Write(w, http.StatusOK, rec)
}

// HandleCreate handles POST /lab-reports.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "decode lab report", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Store.Create(ctx, req.record())
	if err != nil {
		h.ErrLog.Handle(w, r, "create lab report", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate handles PATCH /lab-reports/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.LabReportPatch
	if err := jsonio.Decode(w, r, &p); err != nil {
		h.ErrLog.Handle(w, r, "decode lab report patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, chi.URLParam(r, "id"), sanitizePatch(p)); err != nil {
		h.ErrLog.Handle(w, r, "update lab report", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /lab-reports/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.ErrLog.Handle(w, r, "delete lab report", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBackfill handles POST /lab-reports/backfill.
func (h *Handler) HandleBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.ClassBatch, h.Log, "lab report backfill")
	defer cancel()

	n, err := h.Store.Backfill(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "backfill lab reports", err)
		return
	}
	h.Log.Info("lab report names backfilled", zap.Int("updated", n))
	jsonio.Write(w, http.StatusOK, map[string]int{"updated": n})
}
