// internal/app/store/donors/donorstore.go
// Package donorstore manages the blood donor registry.
package donorstore

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/gocarina/gocsv"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

const Collection = "Donors"

type Store struct {
	ds  docstore.Store
	now func() time.Time
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds, now: time.Now}
}

func (s *Store) List(ctx context.Context) ([]models.Donor, error) {
	docs, err := s.ds.List(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Donor](docs)
}

// GetByID returns nil when the donor does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Donor, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d models.Donor
	if err := docstore.Decode(doc, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) Create(ctx context.Context, in models.Donor) (string, error) {
	in.ID = ""
	in.CreatedAt = s.now().UTC()
	in.UpdatedAt = nil
	fields, err := docstore.Encode(in)
	if err != nil {
		return "", err
	}
	return s.ds.Create(ctx, Collection, "", fields)
}

func (s *Store) Update(ctx context.Context, id string, p models.DonorPatch) error {
	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err := s.ds.Update(ctx, Collection, id, set)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.NotFoundError{Kind: "donor", ID: id}
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.ds.Delete(ctx, Collection, id)
}

// Sort keys accepted by Query.SortBy.
const (
	SortName       = "name"
	SortBloodGroup = "bloodGroup"
	SortCity       = "city"
	SortDate       = "date"
)

// Query filters and orders a donor list for the admin table.
type Query struct {
	Search            string
	BloodGroup        string
	City              string
	ContactPreference string
	SortBy            string
}

// Apply returns the donors matching q in q's order. Search matches a
// substring of name, email, contact number, blood group or city. City
// matches case-insensitively; the other filters match exactly.
func (q Query) Apply(donors []models.Donor) []models.Donor {
	needle := text.Fold(strings.TrimSpace(q.Search))
	city := text.Fold(strings.TrimSpace(q.City))

	out := make([]models.Donor, 0, len(donors))
	for _, d := range donors {
		if needle != "" && !matches(d, needle) {
			continue
		}
		if q.BloodGroup != "" && d.BloodGroup != q.BloodGroup {
			continue
		}
		if city != "" && text.Fold(d.City) != city {
			continue
		}
		if q.ContactPreference != "" && d.ContactPreference != q.ContactPreference {
			continue
		}
		out = append(out, d)
	}

	switch q.SortBy {
	case SortName:
		sortFolded(out, func(d models.Donor) string { return d.Name })
	case SortBloodGroup:
		sortFolded(out, func(d models.Donor) string { return d.BloodGroup })
	case SortCity:
		sortFolded(out, func(d models.Donor) string { return d.City })
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

func matches(d models.Donor, needle string) bool {
	for _, f := range []string{d.Name, d.Email, d.ContactNumber, d.BloodGroup, d.City} {
		if strings.Contains(text.Fold(f), needle) {
			return true
		}
	}
	return false
}

func sortFolded(donors []models.Donor, key func(models.Donor) string) {
	sort.SliceStable(donors, func(i, j int) bool {
		return text.Fold(key(donors[i])) < text.Fold(key(donors[j]))
	})
}

// WriteCSV writes donors as CSV with a header row.
func WriteCSV(w io.Writer, donors []models.Donor) error {
	if donors == nil {
		donors = []models.Donor{}
	}
	return gocsv.Marshal(&donors, w)
}
