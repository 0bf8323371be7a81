// internal/app/features/vouchers/handler.go
// Package vouchers serves the voucher catalog. Create and update accept
// either JSON or a multipart form carrying an "image" file.
package vouchers

import (
	"net/http"

	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *voucherstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *voucherstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

// writeOutcome answers a business-rule outcome. A rejected code is a
// conflict; the body carries the operator message either way.
func writeOutcome(w http.ResponseWriter, okStatus int, o voucherstore.Outcome) {
	if !o.Success {
		jsonio.Write(w, http.StatusConflict, o)
		return
	}
	jsonio.Write(w, okStatus, o)
}
