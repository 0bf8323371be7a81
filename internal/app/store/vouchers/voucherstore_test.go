package voucherstore_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/blob"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*voucherstore.Store, docstore.Store, *testutil.FakeBlobs) {
	t.Helper()
	ds := testutil.NewDocStore(t)
	blobs := testutil.NewFakeBlobs()
	return voucherstore.New(ds, blobs, zap.NewNop()), ds, blobs
}

func TestStore_CreateRejectsDuplicateCode(t *testing.T) {
	store, _, blobs := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out, err := store.Create(ctx, models.Voucher{Title: "Ten off", Code: "SAVE10", CreditCost: 50, IsActive: true}, nil)
	if err != nil || !out.Success || out.ID == "" {
		t.Fatalf("first Create: %+v, %v", out, err)
	}

	img := &voucherstore.Upload{Filename: "promo.png", ContentType: "image/png", Body: strings.NewReader("png")}
	out, err = store.Create(ctx, models.Voucher{Title: "Copy", Code: "SAVE10"}, img)
	if err != nil {
		t.Fatalf("second Create returned error: %v", err)
	}
	if out.Success {
		t.Fatal("expected duplicate code to fail")
	}
	if out.Message != "This voucher code already exists. Please use a different code." {
		t.Errorf("message: %q", out.Message)
	}
	if blobs.Count() != 0 {
		t.Error("no image should be uploaded for a rejected voucher")
	}

	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Errorf("expected 1 voucher, got %d", len(list))
	}
}

func TestStore_ConcurrentCreatesSameCode(t *testing.T) {
	store, _, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const n = 8
	var wg sync.WaitGroup
	results := make([]voucherstore.Outcome, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := store.Create(ctx, models.Voucher{Title: "Race", Code: "RACE1"}, nil)
			if err != nil {
				t.Errorf("Create: %v", err)
			}
			results[i] = out
		}()
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		if r.Success {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one successful create, got %d", wins)
	}
}

func TestStore_CreateWithImage(t *testing.T) {
	store, _, blobs := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img := &voucherstore.Upload{Filename: "promo.png", ContentType: "image/png", Body: strings.NewReader("png")}
	out, err := store.Create(ctx, models.Voucher{Title: "Pic", Code: "PIC1"}, img)
	if err != nil || !out.Success {
		t.Fatalf("Create: %+v, %v", out, err)
	}
	v, _ := store.GetByID(ctx, out.ID)
	if !regexp.MustCompile(`^https://blobs\.test/vouchers/\d+-promo\.png$`).MatchString(v.ImageURL) {
		t.Errorf("imageUrl: %q", v.ImageURL)
	}
	if blobs.Count() != 1 {
		t.Errorf("expected 1 stored object, got %d", blobs.Count())
	}
	if v.CreatedAt.IsZero() {
		t.Error("expected createdAt")
	}
}

func TestStore_CreateWithImageWithoutBlobStore(t *testing.T) {
	ds := testutil.NewDocStore(t)
	store := voucherstore.New(ds, nil, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img := &voucherstore.Upload{Filename: "promo.png", ContentType: "image/png", Body: strings.NewReader("png")}
	_, err := store.Create(ctx, models.Voucher{Title: "Pic", Code: "NOBLOB"}, img)
	if !errors.Is(err, blob.ErrNotConfigured) {
		t.Fatalf("Create err = %v, want blob.ErrNotConfigured", err)
	}
	list, _ := store.List(ctx)
	if len(list) != 0 {
		t.Errorf("expected no voucher written, got %d", len(list))
	}

	// Without an image the store works as usual.
	out, err := store.Create(ctx, models.Voucher{Title: "Plain", Code: "NOBLOB"}, nil)
	if err != nil || !out.Success {
		t.Fatalf("Create without image: %+v, %v", out, err)
	}
}

func TestStore_Update(t *testing.T) {
	store, _, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Voucher{Title: "A", Code: "AAA", CreditCost: 10}, nil)
	b, _ := store.Create(ctx, models.Voucher{Title: "B", Code: "BBB"}, nil)

	// Keeping its own code is not a collision.
	same := "AAA"
	title := "A2"
	out, err := store.Update(ctx, a.ID, models.VoucherPatch{Code: &same, Title: &title}, nil)
	if err != nil || !out.Success {
		t.Fatalf("update with own code: %+v, %v", out, err)
	}

	taken := "AAA"
	out, err = store.Update(ctx, b.ID, models.VoucherPatch{Code: &taken}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Success {
		t.Error("expected duplicate code update to fail")
	}

	fresh := "CCC"
	out, _ = store.Update(ctx, b.ID, models.VoucherPatch{Code: &fresh}, nil)
	if !out.Success {
		t.Errorf("update to free code: %+v", out)
	}

	got, _ := store.GetByID(ctx, a.ID)
	if got.Title != "A2" || got.CreditCost != 10 || got.UpdatedAt == nil {
		t.Errorf("merge-patch: %+v", got)
	}
}

func TestStore_DeleteAndListForUser(t *testing.T) {
	store, ds, _ := newStore(t)
	ctx := context.Background()

	out, _ := store.Create(ctx, models.Voucher{Title: "X", Code: "XYZ"}, nil)
	if _, err := ds.Create(ctx, "users/u1/vouchers", "", docstore.Document{"voucherId": out.ID, "code": "XYZ", "isUsed": false}); err != nil {
		t.Fatal(err)
	}

	del, err := store.Delete(ctx, out.ID)
	if err != nil || !del.Success {
		t.Fatalf("Delete: %+v, %v", del, err)
	}
	if v, _ := store.GetByID(ctx, out.ID); v != nil {
		t.Error("voucher should be deleted")
	}

	issued, err := store.ListForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(issued) != 1 || issued[0].VoucherID != out.ID || issued[0].UserID != "u1" {
		t.Errorf("issued: %+v", issued)
	}
	if other, _ := store.ListForUser(ctx, "u2"); len(other) != 0 {
		t.Errorf("u2 should have none, got %+v", other)
	}
}

func TestGenerateCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := voucherstore.GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("bad code %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 190 {
		t.Errorf("codes look non-random: %d distinct of 200", len(seen))
	}
}
