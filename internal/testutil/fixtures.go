package testutil

import (
	"context"
	"testing"

	categorystore "github.com/medisow/medisowadmin/internal/app/store/categories"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	labreportstore "github.com/medisow/medisowadmin/internal/app/store/labreports"
	medicinestore "github.com/medisow/medisowadmin/internal/app/store/medicines"
	prescriptionstore "github.com/medisow/medisowadmin/internal/app/store/prescriptions"
	subcategorystore "github.com/medisow/medisowadmin/internal/app/store/subcategories"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

// Catalog wires the category and item stores over one document store.
type Catalog struct {
	t             *testing.T
	DS            docstore.Store
	Categories    *categorystore.Store
	SubCategories *subcategorystore.Store
	Names         *itemnames.Resolver
	Medicines     *medicinestore.Store
	Prescriptions *prescriptionstore.Store
	LabReports    *labreportstore.Store
}

// NewCatalog builds a Catalog on a fresh bolt store.
func NewCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalogOn(t, NewDocStore(t))
}

// NewCatalogOn builds a Catalog on ds.
func NewCatalogOn(t *testing.T, ds docstore.Store) *Catalog {
	t.Helper()
	cats := categorystore.New(ds)
	subs := subcategorystore.New(ds, cats, subcategorystore.Options{Concurrency: 4})
	names := itemnames.New(cats, subs, 4)
	return &Catalog{
		t:             t,
		DS:            ds,
		Categories:    cats,
		SubCategories: subs,
		Names:         names,
		Medicines:     medicinestore.New(ds, names),
		Prescriptions: prescriptionstore.New(ds, names),
		LabReports:    labreportstore.New(ds, names),
	}
}

// CreateCategory creates a category and returns its id.
func (c *Catalog) CreateCategory(ctx context.Context, d models.Domain, name string) string {
	c.t.Helper()
	id, err := c.Categories.Create(ctx, d, models.Category{Name: name})
	if err != nil {
		c.t.Fatalf("create %s category %q: %v", d, name, err)
	}
	return id
}

// CreateSubCategory creates a sub-category under parentID and returns its id.
func (c *Catalog) CreateSubCategory(ctx context.Context, parentID, name string) string {
	c.t.Helper()
	id, err := c.SubCategories.Create(ctx, parentID, models.SubCategory{Name: name})
	if err != nil {
		c.t.Fatalf("create sub-category %q: %v", name, err)
	}
	return id
}

// InsertRaw writes a document directly, bypassing repository logic.
func (c *Catalog) InsertRaw(ctx context.Context, path string, doc docstore.Document) string {
	c.t.Helper()
	id, err := c.DS.Create(ctx, path, "", doc)
	if err != nil {
		c.t.Fatalf("insert into %s: %v", path, err)
	}
	return id
}
