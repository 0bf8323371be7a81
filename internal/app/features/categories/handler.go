// internal/app/features/categories/handler.go
// Package categories serves the per-domain category registry.
package categories

import (
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	categorystore "github.com/medisow/medisowadmin/internal/app/store/categories"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *categorystore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *categorystore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}
