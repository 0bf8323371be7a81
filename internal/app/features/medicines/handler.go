// internal/app/features/medicines/handler.go
// Package medicines serves the medicine catalog.
package medicines

import (
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	medicinestore "github.com/medisow/medisowadmin/internal/app/store/medicines"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *medicinestore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *medicinestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Company       string   `json:"company" validate:"max=200"`
	Composition   string   `json:"composition" validate:"max=5000"`
	CategoryID    string   `json:"categoryId"`
	SubCategoryID string   `json:"subCategoryId"`
	ImagesURL     []string `json:"images_url" validate:"dive,url"`
}

func (c createRequest) medicine() models.Medicine {
	return models.Medicine{
		Name:          htmlsanitize.Text(c.Name),
		Company:       htmlsanitize.Text(c.Company),
		Composition:   htmlsanitize.Text(c.Composition),
		CategoryID:    c.CategoryID,
		SubCategoryID: c.SubCategoryID,
		ImagesURL:     c.ImagesURL,
	}
}

func sanitizePatch(p models.MedicinePatch) models.MedicinePatch {
	p.Name = htmlsanitize.TextPtr(p.Name)
	p.Company = htmlsanitize.TextPtr(p.Company)
	p.Composition = htmlsanitize.TextPtr(p.Composition)
	return p
}
