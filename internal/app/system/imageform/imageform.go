// internal/app/system/imageform/imageform.go
// Package imageform reads an image file from a multipart request and
// checks that its content really is an image.
package imageform

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
)

// MaxUploadSize bounds the whole multipart body.
const MaxUploadSize = 10 << 20

// File is an uploaded image held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Reader returns a fresh reader over the file contents.
func (f *File) Reader() io.Reader { return bytes.NewReader(f.Data) }

// IsMultipart reports whether r carries a multipart form.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// Parse parses the multipart form of r with the size bound applied.
func Parse(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return &jsonio.BadRequestError{Msg: "upload too large; maximum is 10 MB", Err: err}
		}
		return &jsonio.BadRequestError{Msg: "invalid multipart form", Err: err}
	}
	return nil
}

// Read returns the image in form field, or nil when the field is absent.
// Call Parse first. The declared content type is ignored; the type is
// sniffed from the bytes.
func Read(r *http.Request, field string) (*File, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &jsonio.BadRequestError{Msg: "invalid file field " + field, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, jsonio.BadRequest("file %s is empty", field)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, jsonio.BadRequest("file %s is not an image (%s)", field, mt.String())
	}
	return &File{Filename: hdr.Filename, ContentType: mt.String(), Data: data}, nil
}
