package imageform

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", "hello")
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(data)
	}
	_ = mw.Close()
	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestRead_PNG(t *testing.T) {
	r := multipartRequest(t, "image", "logo.png", pngHeader)
	if !IsMultipart(r) {
		t.Fatal("expected multipart")
	}
	if err := Parse(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	f, err := Read(r, "image")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if f == nil || f.ContentType != "image/png" || f.Filename != "logo.png" {
		t.Fatalf("file = %+v", f)
	}
	if r.FormValue("title") != "hello" {
		t.Errorf("form value lost")
	}
}

func TestRead_Missing(t *testing.T) {
	r := multipartRequest(t, "", "", nil)
	if err := Parse(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	f, err := Read(r, "image")
	if err != nil || f != nil {
		t.Fatalf("Read = %v, %v; want nil, nil", f, err)
	}
}

func TestRead_NotAnImage(t *testing.T) {
	r := multipartRequest(t, "image", "evil.png", []byte("#!/bin/sh\necho hi\n"))
	if err := Parse(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err := Read(r, "image")
	var bre *jsonio.BadRequestError
	if !errors.As(err, &bre) {
		t.Fatalf("err = %v, want bad request", err)
	}
}
