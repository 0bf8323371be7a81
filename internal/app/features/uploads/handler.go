// internal/app/features/uploads/handler.go
// Package uploads accepts a single image and stores it in the blob store
// under one of the known folders.
package uploads

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	"github.com/medisow/medisowadmin/internal/app/system/blob"
	"github.com/medisow/medisowadmin/internal/app/system/imageform"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Blobs  blob.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
	now    func() time.Time
}

func NewHandler(blobs blob.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Blobs: blobs, ErrLog: errLog, Log: logger, now: time.Now}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// HandleUpload handles POST /uploads/{folder} with the image in the
// "file" field.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	if !blob.ValidFolder(folder) {
		h.ErrLog.Handle(w, r, "upload", jsonio.BadRequest("unknown upload folder %q", folder))
		return
	}
	if !imageform.IsMultipart(r) {
		h.ErrLog.Handle(w, r, "upload", jsonio.BadRequest("expected a multipart form"))
		return
	}
	if err := imageform.Parse(w, r); err != nil {
		h.ErrLog.Handle(w, r, "upload", err)
		return
	}
	f, err := imageform.Read(r, "file")
	if err != nil {
		h.ErrLog.Handle(w, r, "upload", err)
		return
	}
	if f == nil {
		h.ErrLog.Handle(w, r, "upload", jsonio.BadRequest("file is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if h.Blobs == nil {
		h.ErrLog.LogServerError(w, r, "blob upload", blob.ErrNotConfigured)
		return
	}
	key := blob.ObjectKey(folder, f.Filename, h.now())
	url, err := h.Blobs.Upload(ctx, f.Reader(), key, f.ContentType)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "blob upload", err)
		return
	}
	h.Log.Info("image uploaded", zap.String("folder", folder), zap.String("key", key), zap.Int("bytes", len(f.Data)))
	jsonio.Write(w, http.StatusCreated, uploadResponse{URL: url})
}
