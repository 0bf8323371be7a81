// internal/app/features/users/handler.go
// Package users serves the read-mostly view of consumer app accounts.
// Accounts are created by the mobile app; admins can inspect and remove
// them.
package users

import (
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	userstore "github.com/medisow/medisowadmin/internal/app/store/users"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Vouchers *voucherstore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, vouchers *voucherstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Vouchers: vouchers, ErrLog: errLog, Log: logger}
}
