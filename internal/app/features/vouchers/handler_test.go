package vouchers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	"github.com/medisow/medisowadmin/internal/app/features/vouchers"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newRouter(t *testing.T) (chi.Router, *testutil.FakeBlobs) {
	t.Helper()
	blobs := testutil.NewFakeBlobs()
	store := voucherstore.New(testutil.NewDocStore(t), blobs, zap.NewNop())
	h := vouchers.NewHandler(store, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/vouchers", vouchers.Routes(h))
	return r, blobs
}

func TestCreate_DuplicateCodeConflict(t *testing.T) {
	r, _ := newRouter(t)
	body := map[string]any{"title": "10% off", "creditCost": 50, "code": "ABC123"}

	rec := testutil.DoJSON(t, r, http.MethodPost, "/vouchers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create = %d body=%s", rec.Code, rec.Body)
	}
	first := testutil.DecodeBody[voucherstore.Outcome](t, rec)
	if !first.Success || first.ID == "" {
		t.Fatalf("outcome = %+v", first)
	}

	rec = testutil.DoJSON(t, r, http.MethodPost, "/vouchers", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create = %d", rec.Code)
	}
	out := testutil.DecodeBody[voucherstore.Outcome](t, rec)
	if out.Success || out.Message != models.ErrDuplicateCode.Error() {
		t.Errorf("outcome = %+v", out)
	}

	rec = testutil.DoJSON(t, r, http.MethodGet, "/vouchers", nil)
	list := testutil.DecodeBody[[]models.Voucher](t, rec)
	if len(list) != 1 || !list[0].IsActive {
		t.Errorf("list = %+v", list)
	}
}

func TestCreate_Validation(t *testing.T) {
	r, _ := newRouter(t)
	rec := testutil.DoJSON(t, r, http.MethodPost, "/vouchers", map[string]any{"title": "x", "creditCost": -1})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_MultipartWithImage(t *testing.T) {
	r, blobs := newRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", "Free checkup")
	_ = mw.WriteField("creditCost", "120")
	_ = mw.WriteField("isActive", "false")
	fw, _ := mw.CreateFormFile("image", "checkup.png")
	_, _ = fw.Write(png)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/vouchers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	id := testutil.DecodeBody[voucherstore.Outcome](t, rec).ID

	rec = testutil.DoJSON(t, r, http.MethodGet, "/vouchers/"+id, nil)
	v := testutil.DecodeBody[models.Voucher](t, rec)
	if v.CreditCost != 120 || v.IsActive {
		t.Errorf("voucher = %+v", v)
	}
	if !strings.HasPrefix(v.ImageURL, testutil.FakeBlobBase+"vouchers/") {
		t.Errorf("imageUrl = %q", v.ImageURL)
	}
	if blobs.Count() != 1 {
		t.Errorf("blobs = %d", blobs.Count())
	}
}

func TestUpdate_CodeRules(t *testing.T) {
	r, _ := newRouter(t)
	a := testutil.DecodeBody[voucherstore.Outcome](t,
		testutil.DoJSON(t, r, http.MethodPost, "/vouchers", map[string]any{"title": "A", "code": "AAA"})).ID
	testutil.DoJSON(t, r, http.MethodPost, "/vouchers", map[string]any{"title": "B", "code": "BBB"})

	rec := testutil.DoJSON(t, r, http.MethodPatch, "/vouchers/"+a, map[string]any{"code": "AAA", "title": "A2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("same code update = %d body=%s", rec.Code, rec.Body)
	}
	rec = testutil.DoJSON(t, r, http.MethodPatch, "/vouchers/"+a, map[string]any{"code": "BBB"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("taken code update = %d", rec.Code)
	}
	rec = testutil.DoJSON(t, r, http.MethodPatch, "/vouchers/missing", map[string]any{"title": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing update = %d", rec.Code)
	}
}

func TestCodeAndDelete(t *testing.T) {
	r, _ := newRouter(t)

	rec := testutil.DoJSON(t, r, http.MethodGet, "/vouchers/code", nil)
	code := testutil.DecodeBody[map[string]string](t, rec)["code"]
	if !regexp.MustCompile(`^[A-Z0-9]{8}$`).MatchString(code) {
		t.Errorf("code = %q", code)
	}

	id := testutil.DecodeBody[voucherstore.Outcome](t,
		testutil.DoJSON(t, r, http.MethodPost, "/vouchers", map[string]any{"title": "A", "code": code})).ID
	rec = testutil.DoJSON(t, r, http.MethodDelete, "/vouchers/"+id, nil)
	if rec.Code != http.StatusOK || !testutil.DecodeBody[voucherstore.Outcome](t, rec).Success {
		t.Fatalf("delete = %d %s", rec.Code, rec.Body)
	}
	rec = testutil.DoJSON(t, r, http.MethodGet, "/vouchers/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}
