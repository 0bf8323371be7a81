package labreportstore_test

import (
	"errors"
	"testing"

	labreportstore "github.com/medisow/medisowadmin/internal/app/store/labreports"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
)

func TestStore_Lifecycle(t *testing.T) {
	c := testutil.NewCatalog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	blood := c.CreateCategory(ctx, models.DomainLabReport, "Blood")
	id, err := c.LabReports.Create(ctx, models.LabReport{Title: "CBC", CategoryID: blood, ImagesURL: []string{"https://cdn.example.com/cbc.png"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := c.LabReports.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v, %v", got, err)
	}
	if got.CategoryName != "Blood" || len(got.ImagesURL) != 1 {
		t.Errorf("got %+v", got)
	}

	// Guard on the category holds while the report exists.
	var rie *models.ReferentialIntegrityError
	if err := c.Categories.Delete(ctx, models.DomainLabReport, blood); !errors.As(err, &rie) {
		t.Fatalf("expected ReferentialIntegrityError, got %v", err)
	}

	if err := c.LabReports.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Categories.Delete(ctx, models.DomainLabReport, blood); err != nil {
		t.Fatalf("category Delete after report removed: %v", err)
	}

	raw, err := c.DS.List(ctx, labreportstore.Collection)
	if err != nil || len(raw) != 0 {
		t.Errorf("expected empty collection, got %v, %v", raw, err)
	}
}
