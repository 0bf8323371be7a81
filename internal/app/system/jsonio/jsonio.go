// Package jsonio reads and writes the JSON bodies of the admin API.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

// BadRequestError is a client error whose message is safe to return.
type BadRequestError struct {
	Msg string
	Err error
}

func (e *BadRequestError) Error() string { return e.Msg }
func (e *BadRequestError) Unwrap() error { return e.Err }

// BadRequest builds a *BadRequestError.
func BadRequest(format string, args ...any) error {
	return &BadRequestError{Msg: fmt.Sprintf(format, args...)}
}

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads exactly one JSON value into v. Unknown fields and
// oversized bodies are rejected. The result is validated when v carries
// validate tags.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return &BadRequestError{Msg: "request body too large", Err: err}
		case errors.Is(err, io.EOF):
			return &BadRequestError{Msg: "request body is empty", Err: err}
		default:
			return &BadRequestError{Msg: "invalid JSON: " + err.Error(), Err: err}
		}
	}
	if dec.More() {
		return &BadRequestError{Msg: "request body must hold a single JSON value"}
	}
	return Validate(v)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names instead of Go field names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate runs struct validation and turns failures into a
// *BadRequestError naming every bad field.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		// Not a struct; nothing to validate.
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return &BadRequestError{Msg: "validation failed: " + strings.Join(parts, "; "), Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "max":
		return fe.Field() + " exceeds " + fe.Param()
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "email":
		return fe.Field() + " must be an email address"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}
