// internal/app/features/prescriptions/handler.go
// Package prescriptions serves the prescription template catalog.
package prescriptions

import (
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	prescriptionstore "github.com/medisow/medisowadmin/internal/app/store/prescriptions"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *prescriptionstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *prescriptionstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	CategoryID  string   `json:"categoryId"`
	ImagesURL   []string `json:"images_url" validate:"dive,url"`
}

func (c createRequest) record() models.Prescription {
	return models.Prescription{
		Title:       htmlsanitize.Text(c.Title),
		Description: htmlsanitize.Text(c.Description),
		CategoryID:  c.CategoryID,
		ImagesURL:   c.ImagesURL,
	}
}

func sanitizePatch(p models.PrescriptionPatch) models.PrescriptionPatch {
	p.Title = htmlsanitize.TextPtr(p.Title)
	p.Description = htmlsanitize.TextPtr(p.Description)
	return p
}
