// internal/app/features/subcategories/handler.go
// Package subcategories serves sub-categories, both nested under their
// parent category and as one flat list across all domains.
package subcategories

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	subcategorystore "github.com/medisow/medisowadmin/internal/app/store/subcategories"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *subcategorystore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *subcategorystore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// nestedParent reads {domain} and {id} from a nested route. A parent id
// whose prefix names another domain is treated as missing.
func (h *Handler) nestedParent(w http.ResponseWriter, r *http.Request) (string, bool) {
	d, err := models.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.ErrLog.Handle(w, r, "parse domain", err)
		return "", false
	}
	parentID := chi.URLParam(r, "id")
	if pd, ok := models.DomainOfCategoryID(parentID); ok && pd != d {
		h.ErrLog.NotFound(w, "parent category", parentID)
		return "", false
	}
	return parentID, true
}

func sanitizePatch(p models.SubCategoryPatch) models.SubCategoryPatch {
	p.Name = htmlsanitize.TextPtr(p.Name)
	p.Description = htmlsanitize.TextPtr(p.Description)
	return p
}
