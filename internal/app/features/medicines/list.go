// internal/app/features/medicines/list.go
package medicines

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	medicinestore "github.com/medisow/medisowadmin/internal/app/store/medicines"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// ServeList handles GET /medicines?categoryId=&subCategoryId=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := medicinestore.Filter{CategoryID: q.Get("categoryId"), SubCategoryID: q.Get("subCategoryId")}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	meds, err := h.Store.List(ctx, f)
	if err != nil {
		h.ErrLog.Handle(w, r, "list medicines", err)
		return
	}
	if meds == nil {
		meds = []models.Medicine{}
	}
	jsonio.Write(w, http.StatusOK, meds)
}

// ServeGet handles GET /medicines/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Handle(w, r, "get medicine", err)
		return
	}
	if m == nil {
		h.ErrLog.NotFound(w, "medicine", id)
		return
	}
	jsonio.Write(w, http.StatusOK, m)
}
