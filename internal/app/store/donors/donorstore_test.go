package donorstore_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	donorstore "github.com/medisow/medisowadmin/internal/app/store/donors"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/medisow/medisowadmin/internal/testutil"
)

func TestStore_CRUD(t *testing.T) {
	store := donorstore.New(testutil.NewDocStore(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.Create(ctx, models.Donor{
		Name:              "Rahim",
		Email:             "rahim@example.com",
		ContactNumber:     "01700000000",
		BloodGroup:        "O+",
		Area:              "Mirpur",
		City:              "Dhaka",
		ContactPreference: "phone",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	city := "Chattogram"
	if err := store.Update(ctx, id, models.DonorPatch{City: &city}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v, %v", got, err)
	}
	if got.City != "Chattogram" {
		t.Errorf("city: got %q", got.City)
	}
	if got.Name != "Rahim" || got.BloodGroup != "O+" || got.Area != "Mirpur" || got.ContactPreference != "phone" {
		t.Errorf("merge-patch changed other fields: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt == nil {
		t.Errorf("timestamps: %+v", got)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.GetByID(ctx, id); got != nil {
		t.Error("expected donor to be deleted")
	}
}

func sampleDonors() []models.Donor {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Donor{
		{ID: "1", Name: "Nadia", Email: "nadia@example.com", ContactNumber: "0171", BloodGroup: "A+", City: "Dhaka", ContactPreference: "email", CreatedAt: base},
		{ID: "2", Name: "arif", Email: "arif@example.com", ContactNumber: "0182", BloodGroup: "O-", City: "sylhet", ContactPreference: "phone", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "3", Name: "Bilal", Email: "bilal@example.com", ContactNumber: "0193", BloodGroup: "A+", City: "Sylhet", ContactPreference: "both", CreatedAt: base.Add(24 * time.Hour)},
	}
}

func ids(donors []models.Donor) string {
	var b strings.Builder
	for _, d := range donors {
		b.WriteString(d.ID)
	}
	return b.String()
}

func TestQuery_Apply(t *testing.T) {
	tests := []struct {
		name  string
		query donorstore.Query
		want  string
	}{
		{"no filters keeps order", donorstore.Query{}, "123"},
		{"search name case-insensitive", donorstore.Query{Search: "NAD"}, "1"},
		{"search contact number", donorstore.Query{Search: "0182"}, "2"},
		{"search blood group", donorstore.Query{Search: "o-"}, "2"},
		{"blood group exact", donorstore.Query{BloodGroup: "A+"}, "13"},
		{"city case-insensitive", donorstore.Query{City: "SYLHET"}, "23"},
		{"contact preference", donorstore.Query{ContactPreference: "both"}, "3"},
		{"combined", donorstore.Query{BloodGroup: "A+", City: "sylhet"}, "3"},
		{"sort by name", donorstore.Query{SortBy: donorstore.SortName}, "231"},
		{"sort by city", donorstore.Query{SortBy: donorstore.SortCity}, "123"},
		{"sort by blood group", donorstore.Query{SortBy: donorstore.SortBloodGroup}, "132"},
		{"sort by date newest first", donorstore.Query{SortBy: donorstore.SortDate}, "231"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.query.Apply(sampleDonors()))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := donorstore.WriteCSV(&buf, sampleDonors()[:1]); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "id,name,email,contact_number,blood_group") {
		t.Errorf("header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Nadia") || !strings.Contains(lines[1], "A+") {
		t.Errorf("row: %q", lines[1])
	}
}
