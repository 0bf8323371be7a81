package uploads_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	"github.com/medisow/medisowadmin/internal/app/features/uploads"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func post(t *testing.T, r http.Handler, target, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(data)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newRouter() (chi.Router, *testutil.FakeBlobs) {
	blobs := testutil.NewFakeBlobs()
	h := uploads.NewHandler(blobs, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/uploads", uploads.Routes(h))
	return r, blobs
}

func TestUpload(t *testing.T) {
	r, blobs := newRouter()

	rec := post(t, r, "/uploads/medicines", "para cetamol.png", png)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	url := testutil.DecodeBody[map[string]string](t, rec)["url"]
	if !strings.HasPrefix(url, testutil.FakeBlobBase+"medicines/") || !strings.HasSuffix(url, "-para_cetamol.png") {
		t.Errorf("url = %q", url)
	}
	if blobs.Count() != 1 {
		t.Errorf("blobs = %d", blobs.Count())
	}
}

func TestUpload_Rejects(t *testing.T) {
	r, blobs := newRouter()

	tests := []struct {
		name, target, filename string
		data                   []byte
	}{
		{"unknown folder", "/uploads/secrets", "a.png", png},
		{"not an image", "/uploads/medicines", "a.png", []byte("hello, plain text")},
		{"missing file", "/uploads/medicines", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := post(t, r, tt.target, tt.filename, tt.data); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
	if blobs.Count() != 0 {
		t.Errorf("blobs = %d", blobs.Count())
	}
}

func TestUpload_WithoutBlobStore(t *testing.T) {
	h := uploads.NewHandler(nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/uploads", uploads.Routes(h))

	if rec := post(t, r, "/uploads/medicines", "a.png", png); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
