package boltstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/docstore/boltstore"
)

func openStore(t *testing.T, opts ...boltstore.Option) *boltstore.Store {
	t.Helper()
	s, err := boltstore.Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestStore_CreateGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "donors", "", docstore.Document{"name": "Ana", "city": "Dhaka"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	doc, err := s.Get(ctx, "donors", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc["name"] != "Ana" || doc[docstore.IDField] != id {
		t.Errorf("unexpected doc %v", doc)
	}
}

func TestStore_CreateExplicitIDDuplicate(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "medicineCategories", "med_1", docstore.Document{"name": "A"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, "medicineCategories", "med_1", docstore.Document{"name": "B"})
	if !errors.Is(err, docstore.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "donors", "nope")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdateMerges(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, _ := s.Create(ctx, "donors", "", docstore.Document{"name": "Ana", "city": "Dhaka", "area": "Mirpur"})
	if err := s.Update(ctx, "donors", id, docstore.Document{"city": "Sylhet"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc, _ := s.Get(ctx, "donors", id)
	if doc["city"] != "Sylhet" || doc["name"] != "Ana" || doc["area"] != "Mirpur" {
		t.Errorf("merge lost fields: %v", doc)
	}

	err := s.Update(ctx, "donors", "missing", docstore.Document{"city": "x"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Delete(ctx, "never_created", "x"); err != nil {
		t.Fatalf("Delete on missing bucket: %v", err)
	}
	id, _ := s.Create(ctx, "donors", "", docstore.Document{"name": "Ana"})
	if err := s.Delete(ctx, "donors", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "donors", id); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := s.Get(ctx, "donors", id); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected deleted, got %v", err)
	}
}

func TestStore_NestedCollectionsIsolated(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	pathA := "medicineCategories/med_1/subCategories"
	pathB := "medicineCategories/med_2/subCategories"
	if _, err := s.Create(ctx, pathA, "", docstore.Document{"name": "a1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, pathA, "", docstore.Document{"name": "a2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, pathB, "", docstore.Document{"name": "b1"}); err != nil {
		t.Fatal(err)
	}

	a, _ := s.List(ctx, pathA)
	b, _ := s.List(ctx, pathB)
	if len(a) != 2 || len(b) != 1 {
		t.Fatalf("got %d under A and %d under B", len(a), len(b))
	}
	top, _ := s.List(ctx, "medicineCategories")
	if len(top) != 0 {
		t.Errorf("children leaked into parent collection: %v", top)
	}
}

func TestStore_QueryEquals(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, _ = s.Create(ctx, "medicines", "", docstore.Document{"categoryId": "med_1", "stock": 3})
	_, _ = s.Create(ctx, "medicines", "", docstore.Document{"categoryId": "med_1"})
	_, _ = s.Create(ctx, "medicines", "", docstore.Document{"categoryId": "med_2"})

	got, err := s.QueryEquals(ctx, "medicines", "categoryId", "med_1")
	if err != nil {
		t.Fatalf("QueryEquals: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got))
	}

	got, _ = s.QueryEquals(ctx, "medicines", "stock", 3)
	if len(got) != 1 {
		t.Errorf("int match: expected 1, got %d", len(got))
	}

	got, _ = s.QueryEquals(ctx, "prescriptions", "categoryId", "med_1")
	if len(got) != 0 {
		t.Errorf("empty collection: expected 0, got %d", len(got))
	}
}

func TestStore_UniqueField(t *testing.T) {
	s := openStore(t, boltstore.WithUnique("vouchers", "code"))
	ctx := context.Background()

	first, err := s.Create(ctx, "vouchers", "", docstore.Document{"code": "SAVE10"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "vouchers", "", docstore.Document{"code": "SAVE10"}); !errors.Is(err, docstore.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	// Empty codes are not constrained.
	if _, err := s.Create(ctx, "vouchers", "", docstore.Document{"code": ""}); err != nil {
		t.Fatalf("empty code 1: %v", err)
	}
	if _, err := s.Create(ctx, "vouchers", "", docstore.Document{"code": ""}); err != nil {
		t.Fatalf("empty code 2: %v", err)
	}

	second, _ := s.Create(ctx, "vouchers", "", docstore.Document{"code": "OTHER"})
	if err := s.Update(ctx, "vouchers", second, docstore.Document{"code": "SAVE10"}); !errors.Is(err, docstore.ErrDuplicate) {
		t.Errorf("update into taken code: expected ErrDuplicate, got %v", err)
	}
	if err := s.Update(ctx, "vouchers", first, docstore.Document{"code": "SAVE10", "title": "t"}); err != nil {
		t.Errorf("update keeping own code: %v", err)
	}
}
