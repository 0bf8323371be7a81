package donors_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/medisow/medisowadmin/internal/app/features/donors"
	uierrors "github.com/medisow/medisowadmin/internal/app/features/errors"
	donorstore "github.com/medisow/medisowadmin/internal/app/store/donors"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	store := donorstore.New(testutil.NewDocStore(t))
	h := donors.NewHandler(store, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/donors", donors.Routes(h))
	return r
}

func seed(t *testing.T, r chi.Router) map[string]string {
	t.Helper()
	ids := map[string]string{}
	for _, d := range []map[string]string{
		{"name": "Zara", "contactNumber": "111", "bloodGroup": "A+", "city": "Dhaka", "contactPreference": "phone"},
		{"name": "adam", "contactNumber": "222", "bloodGroup": "O-", "city": "Chittagong", "contactPreference": "email", "email": "adam@example.com"},
		{"name": "Mina", "contactNumber": "333", "bloodGroup": "A+", "city": "dhaka", "contactPreference": "both"},
	} {
		rec := testutil.DoJSON(t, r, http.MethodPost, "/donors", d)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", d["name"], rec.Code, rec.Body)
		}
		ids[d["name"]] = testutil.DecodeBody[map[string]string](t, rec)["id"]
	}
	return ids
}

func names(ds []models.Donor) string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return strings.Join(out, ",")
}

func TestList_FiltersAndSort(t *testing.T) {
	r := newRouter(t)
	seed(t, r)

	tests := []struct {
		query string
		want  string
	}{
		{"?sortBy=name", "adam,Mina,Zara"},
		{"?bloodGroup=A%2B&sortBy=name", "Mina,Zara"},
		{"?city=DHAKA&sortBy=name", "Mina,Zara"},
		{"?q=example.com", "adam"},
		{"?contactPreference=both", "Mina"},
	}
	for _, tt := range tests {
		rec := testutil.DoJSON(t, r, http.MethodGet, "/donors"+tt.query, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", tt.query, rec.Code)
		}
		if got := names(testutil.DecodeBody[[]models.Donor](t, rec)); got != tt.want {
			t.Errorf("GET /donors%s = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestList_UnknownSort(t *testing.T) {
	r := newRouter(t)
	rec := testutil.DoJSON(t, r, http.MethodGet, "/donors?sortBy=age", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_Validation(t *testing.T) {
	r := newRouter(t)
	rec := testutil.DoJSON(t, r, http.MethodPost, "/donors", map[string]string{
		"name": "X", "contactNumber": "1", "bloodGroup": "C+", "city": "Dhaka", "contactPreference": "phone",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := testutil.ErrorMessage(t, rec); !strings.Contains(msg, "bloodGroup") {
		t.Errorf("message = %q", msg)
	}
}

func TestUpdateGetDelete(t *testing.T) {
	r := newRouter(t)
	ids := seed(t, r)

	rec := testutil.DoJSON(t, r, http.MethodPatch, "/donors/"+ids["Zara"], map[string]string{"city": "Sylhet"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d body=%s", rec.Code, rec.Body)
	}
	rec = testutil.DoJSON(t, r, http.MethodGet, "/donors/"+ids["Zara"], nil)
	got := testutil.DecodeBody[models.Donor](t, rec)
	if got.City != "Sylhet" || got.UpdatedAt == nil || got.BloodGroup != "A+" {
		t.Errorf("donor = %+v", got)
	}

	rec = testutil.DoJSON(t, r, http.MethodDelete, "/donors/"+ids["Zara"], nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = testutil.DoJSON(t, r, http.MethodGet, "/donors/"+ids["Zara"], nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestExportCSV(t *testing.T) {
	r := newRouter(t)
	seed(t, r)

	rec := testutil.DoJSON(t, r, http.MethodGet, "/donors/export.csv?bloodGroup=A%2B&sortBy=name", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][1] != "name" || rows[1][1] != "Mina" || rows[2][1] != "Zara" {
		t.Errorf("rows = %v", rows)
	}
}
