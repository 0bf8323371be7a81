// internal/app/features/users/handlers.go
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/medisow/medisowadmin/internal/app/store/users"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /users?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "list users", err)
		return
	}
	out := userstore.Search(all, r.URL.Query().Get("q"))
	if out == nil {
		out = []models.User{}
	}
	jsonio.Write(w, http.StatusOK, out)
}

// ServeGet handles GET /users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get user", err)
		return
	}
	if u == nil {
		h.ErrLog.NotFound(w, "user", id)
		return
	}
	jsonio.Write(w, http.StatusOK, u)
}

// ServeVouchers handles GET /users/{id}/vouchers: the vouchers the user
// has redeemed.
func (h *Handler) ServeVouchers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Vouchers.ListForUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Handle(w, r, "list user vouchers", err)
		return
	}
	if list == nil {
		list = []models.UserVoucher{}
	}
	jsonio.Write(w, http.StatusOK, list)
}

// HandleDelete handles DELETE /users/{id}. Redeemed vouchers under the
// user are left in place.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		h.ErrLog.Handle(w, r, "delete user", err)
		return
	}
	h.Log.Info("user deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
