// internal/app/features/vouchers/handlers.go
package vouchers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /vouchers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "list vouchers", err)
		return
	}
	if list == nil {
		list = []models.Voucher{}
	}
	jsonio.Write(w, http.StatusOK, list)
}

// ServeGet handles GET /vouchers/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get voucher", err)
		return
	}
	if v == nil {
		h.ErrLog.NotFound(w, "voucher", id)
		return
	}
	jsonio.Write(w, http.StatusOK, v)
}

// ServeCode handles GET /vouchers/code: a fresh random code for the
// create form. The code is not reserved.
func (h *Handler) ServeCode(w http.ResponseWriter, r *http.Request) {
	code, err := voucherstore.GenerateCode()
	if err != nil {
		h.ErrLog.Handle(w, r, "generate voucher code", err)
		return
	}
	jsonio.Write(w, http.StatusOK, map[string]string{"code": code})
}

// HandleCreate handles POST /vouchers.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, img, err := readCreate(w, r)
	if err != nil {
		h.ErrLog.Handle(w, r, "read voucher", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	out, err := h.Store.Create(ctx, req.voucher(), img)
	if err != nil {
		h.ErrLog.Handle(w, r, "create voucher", err)
		return
	}
	if out.Success {
		h.Log.Info("voucher created", zap.String("id", out.ID))
	}
	writeOutcome(w, http.StatusCreated, out)
}

// HandleUpdate handles PATCH /vouchers/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, img, err := readPatch(w, r)
	if err != nil {
		h.ErrLog.Handle(w, r, "read voucher patch", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	out, err := h.Store.Update(ctx, chi.URLParam(r, "id"), p, img)
	if err != nil {
		h.ErrLog.Handle(w, r, "update voucher", err)
		return
	}
	writeOutcome(w, http.StatusOK, out)
}

// HandleDelete handles DELETE /vouchers/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	out, err := h.Store.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Handle(w, r, "delete voucher", err)
		return
	}
	writeOutcome(w, http.StatusOK, out)
}
