// internal/app/features/errors/errors.go
// Package errors turns handler failures into JSON error responses and
// logs the ones the caller cannot fix.
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error string `json:"error"`
}

// ErrorLogger writes error responses. Server errors are logged with the
// request context; client errors are logged at debug level.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, msg string, err error) []zap.Field {
	return []zap.Field{
		zap.String("msg_ctx", msg),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
}

// LogServerError logs err and answers 500 with a generic message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error("request failed", e.fields(r, msg, err)...)
	jsonio.Write(w, http.StatusInternalServerError, Body{Error: "operation failed"})
}

// LogBadRequest answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Debug("bad request", e.fields(r, msg, err)...)
	jsonio.Write(w, http.StatusBadRequest, Body{Error: userMsg})
}

// Handle maps err onto a status:
//
//	*models.NotFoundError, docstore.ErrNotFound -> 404
//	*models.ReferentialIntegrityError           -> 409, message verbatim
//	*models.UnknownDomainError                  -> 400
//	*jsonio.BadRequestError                     -> 400
//	anything else                               -> 500
func (e *ErrorLogger) Handle(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var (
		nf  *models.NotFoundError
		rie *models.ReferentialIntegrityError
		ud  *models.UnknownDomainError
		bad *jsonio.BadRequestError
	)
	switch {
	case stderrors.As(err, &nf):
		jsonio.Write(w, http.StatusNotFound, Body{Error: nf.Error()})
	case stderrors.Is(err, docstore.ErrNotFound):
		jsonio.Write(w, http.StatusNotFound, Body{Error: "not found"})
	case stderrors.As(err, &rie):
		jsonio.Write(w, http.StatusConflict, Body{Error: rie.Error()})
	case stderrors.As(err, &ud):
		e.LogBadRequest(w, r, msg, err, ud.Error())
	case stderrors.As(err, &bad):
		e.LogBadRequest(w, r, msg, err, bad.Msg)
	default:
		e.LogServerError(w, r, msg, err)
	}
}

// NotFound answers 404 for a missing record.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, kind, id string) {
	err := &models.NotFoundError{Kind: kind, ID: id}
	jsonio.Write(w, http.StatusNotFound, Body{Error: err.Error()})
}
