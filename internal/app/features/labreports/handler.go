// internal/app/features/labreports/handler.go
// Package labreports serves the lab report template catalog.
package labreports

import (
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	labreportstore "github.com/medisow/medisowadmin/internal/app/store/labreports"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *labreportstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *labreportstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	CategoryID  string   `json:"categoryId"`
	ImagesURL   []string `json:"images_url" validate:"dive,url"`
}

func (c createRequest) record() models.LabReport {
	return models.LabReport{
		Title:       htmlsanitize.Text(c.Title),
		Description: htmlsanitize.Text(c.Description),
		CategoryID:  c.CategoryID,
		ImagesURL:   c.ImagesURL,
	}
}

func sanitizePatch(p models.LabReportPatch) models.LabReportPatch {
	p.Title = htmlsanitize.TextPtr(p.Title)
	p.Description = htmlsanitize.TextPtr(p.Description)
	return p
}
