package prescriptions_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	"github.com/medisow/medisowadmin/internal/app/features/prescriptions"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (chi.Router, *testutil.Catalog) {
	t.Helper()
	cat := testutil.NewCatalog(t)
	h := prescriptions.NewHandler(cat.Prescriptions, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/prescriptions", prescriptions.Routes(h))
	return r, cat
}

func TestLifecycle(t *testing.T) {
	r, cat := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := cat.CreateCategory(ctx, models.DomainPrescription, "Cardiology")

	rec := testutil.DoJSON(t, r, http.MethodPost, "/prescriptions",
		map[string]any{"title": "Beta blockers", "categoryId": c, "images_url": []string{"https://img.test/a.png"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body)
	}
	id := testutil.DecodeBody[map[string]string](t, rec)["id"]

	rec = testutil.DoJSON(t, r, http.MethodGet, "/prescriptions?categoryId="+c, nil)
	list := testutil.DecodeBody[[]models.Prescription](t, rec)
	if len(list) != 1 || list[0].CategoryName != "Cardiology" || len(list[0].ImagesURL) != 1 {
		t.Fatalf("list = %+v", list)
	}

	rec = testutil.DoJSON(t, r, http.MethodPatch, "/prescriptions/"+id, map[string]any{"title": "Beta-blockers"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d body=%s", rec.Code, rec.Body)
	}
	rec = testutil.DoJSON(t, r, http.MethodGet, "/prescriptions/"+id, nil)
	if got := testutil.DecodeBody[models.Prescription](t, rec); got.Title != "Beta-blockers" {
		t.Errorf("title = %q", got.Title)
	}

	rec = testutil.DoJSON(t, r, http.MethodDelete, "/prescriptions/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = testutil.DoJSON(t, r, http.MethodGet, "/prescriptions/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestCreate_RejectsBadImageURL(t *testing.T) {
	r, _ := newRouter(t)
	rec := testutil.DoJSON(t, r, http.MethodPost, "/prescriptions",
		map[string]any{"title": "x", "images_url": []string{"not a url"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBackfill(t *testing.T) {
	r, cat := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := cat.CreateCategory(ctx, models.DomainPrescription, "Cardiology")
	cat.InsertRaw(ctx, "prescriptions", map[string]any{"title": "A", "categoryId": c})
	cat.InsertRaw(ctx, "prescriptions", map[string]any{"title": "B"})

	rec := testutil.DoJSON(t, r, http.MethodPost, "/prescriptions/backfill", nil)
	if got := testutil.DecodeBody[map[string]int](t, rec)["updated"]; got != 1 {
		t.Errorf("updated = %d, want 1", got)
	}
}
