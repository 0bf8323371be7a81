// internal/app/features/notifications/handler.go
// Package notifications sends push notifications to a topic and lists
// the send log.
package notifications

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/push"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Dispatcher *push.Dispatcher
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(d *push.Dispatcher, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Dispatcher: d, ErrLog: errLog, Log: logger}
}

type sendRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required,max=2000"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
	Topic    string `json:"topic" validate:"omitempty,max=100"`
}

// HandleSend handles POST /notifications. A failed delivery answers 502
// with the failed result; the log row is written either way.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.ErrLog.Handle(w, r, "read notification", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Dispatcher.Send(ctx, push.Message{
		Title:    htmlsanitize.Text(req.Title),
		Body:     htmlsanitize.Text(req.Body),
		ImageURL: req.ImageURL,
		Topic:    req.Topic,
	})
	switch {
	case err == nil:
		jsonio.Write(w, http.StatusOK, res)
	case errors.Is(err, push.ErrInvalidMessage):
		h.ErrLog.LogBadRequest(w, r, "send notification", err, err.Error())
	case errors.Is(err, push.ErrNotConfigured):
		h.Log.Warn("push disabled", zap.Error(err))
		jsonio.Write(w, http.StatusServiceUnavailable, res)
	default:
		jsonio.Write(w, http.StatusBadGateway, res)
	}
}

// ServeHistory handles GET /notifications.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.History(ctx)
	if err != nil {
		h.ErrLog.Handle(w, r, "notification history", err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	jsonio.Write(w, http.StatusOK, list)
}
