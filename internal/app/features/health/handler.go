package health

import (
	"context"
	"net/http"

	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is satisfied by every docstore backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler reports whether the document store is reachable.
type Handler struct {
	DB      Pinger
	Backend string
	Log     *zap.Logger
}

func NewHandler(db Pinger, backend string, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Backend: backend, Log: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "backend":"mongo" }
//
// On failure: 503 with "status":"error".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health-check: ping failed", zap.String("backend", h.Backend), zap.Error(err))
		jsonio.Write(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			Database: "disconnected",
			Backend:  h.Backend,
			Message:  "Database unavailable",
			Error:    err.Error(),
		})
		return
	}
	jsonio.Write(w, http.StatusOK, healthResponse{Status: "ok", Database: "connected", Backend: h.Backend})
}
