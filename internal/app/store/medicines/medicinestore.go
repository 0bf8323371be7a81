// internal/app/store/medicines/medicinestore.go
// Package medicinestore manages medicines. Each medicine carries copies
// of its category and sub-category names; missing copies are filled in
// when records are read.
package medicinestore

import (
	"context"
	"errors"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

const Collection = "medicines"

// Filter narrows List by exact category and sub-category id.
type Filter struct {
	CategoryID    string
	SubCategoryID string
}

type Store struct {
	ds    docstore.Store
	names *itemnames.Resolver
	now   func() time.Time
}

func New(ds docstore.Store, names *itemnames.Resolver) *Store {
	return &Store{ds: ds, names: names, now: time.Now}
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Medicine, error) {
	docs, err := s.find(ctx, f)
	if err != nil {
		return nil, err
	}
	meds, err := docstore.DecodeAll[models.Medicine](docs)
	if err != nil {
		return nil, err
	}
	err = s.names.Each(ctx, len(meds), func(ctx context.Context, i int) error {
		return s.fillNames(ctx, &meds[i])
	})
	if err != nil {
		return nil, err
	}
	return meds, nil
}

func (s *Store) find(ctx context.Context, f Filter) ([]docstore.Document, error) {
	switch {
	case f.CategoryID != "" && f.SubCategoryID != "":
		docs, err := s.ds.QueryEquals(ctx, Collection, "categoryId", f.CategoryID)
		if err != nil {
			return nil, err
		}
		out := docs[:0]
		for _, d := range docs {
			if d["subCategoryId"] == f.SubCategoryID {
				out = append(out, d)
			}
		}
		return out, nil
	case f.CategoryID != "":
		return s.ds.QueryEquals(ctx, Collection, "categoryId", f.CategoryID)
	case f.SubCategoryID != "":
		return s.ds.QueryEquals(ctx, Collection, "subCategoryId", f.SubCategoryID)
	}
	return s.ds.List(ctx, Collection)
}

// GetByID returns nil when the medicine does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m models.Medicine
	if err := docstore.Decode(doc, &m); err != nil {
		return nil, err
	}
	if err := s.fillNames(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// fillNames sets missing names on the in-memory record only.
func (s *Store) fillNames(ctx context.Context, m *models.Medicine) error {
	if m.CategoryName == "" && m.CategoryID != "" {
		name, err := s.names.CategoryName(ctx, models.DomainMedicine, m.CategoryID)
		if err != nil {
			return err
		}
		m.CategoryName = name
	}
	if m.SubCategoryName == "" && m.SubCategoryID != "" {
		name, err := s.names.SubCategoryName(ctx, m.CategoryID, m.SubCategoryID)
		if err != nil {
			return err
		}
		m.SubCategoryName = name
	}
	return nil
}

// Create stores the medicine as given. References are not checked; a
// name is copied only when the referenced record exists.
func (s *Store) Create(ctx context.Context, in models.Medicine) (string, error) {
	if err := s.fillNames(ctx, &in); err != nil {
		return "", err
	}
	images := in.ImagesURL
	if images == nil {
		images = []string{}
	}
	fields := bson.M{
		"name":        in.Name,
		"company":     in.Company,
		"composition": in.Composition,
		"images_url":  images,
		"createdAt":   s.now().UTC(),
	}
	for k, v := range map[string]string{
		"categoryId":      in.CategoryID,
		"categoryName":    in.CategoryName,
		"subCategoryId":   in.SubCategoryID,
		"subCategoryName": in.SubCategoryName,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return s.ds.Create(ctx, Collection, "", fields)
}

// Update applies p as a merge-patch. A new sub-category id without a
// category id is resolved against the stored category.
func (s *Store) Update(ctx context.Context, id string, p models.MedicinePatch) error {
	if p.CategoryID != nil && *p.CategoryID != "" && p.CategoryName == nil {
		name, err := s.names.CategoryName(ctx, models.DomainMedicine, *p.CategoryID)
		if err != nil {
			return err
		}
		if name != "" {
			p.CategoryName = &name
		}
	}
	if p.SubCategoryID != nil && *p.SubCategoryID != "" && p.SubCategoryName == nil {
		parentID := ""
		if p.CategoryID != nil {
			parentID = *p.CategoryID
		} else {
			cur, err := s.ds.Get(ctx, Collection, id)
			if errors.Is(err, docstore.ErrNotFound) {
				return &models.NotFoundError{Kind: "medicine", ID: id}
			}
			if err != nil {
				return err
			}
			parentID, _ = cur["categoryId"].(string)
		}
		name, err := s.names.SubCategoryName(ctx, parentID, *p.SubCategoryID)
		if err != nil {
			return err
		}
		if name != "" {
			p.SubCategoryName = &name
		}
	}

	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err := s.ds.Update(ctx, Collection, id, set)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.NotFoundError{Kind: "medicine", ID: id}
	}
	return err
}

// Delete removes the record. Referenced images stay in blob storage.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.ds.Delete(ctx, Collection, id)
}

// Backfill writes missing category and sub-category names into stored
// records and reports how many records changed.
func (s *Store) Backfill(ctx context.Context) (int, error) {
	docs, err := s.ds.List(ctx, Collection)
	if err != nil {
		return 0, err
	}
	meds, err := docstore.DecodeAll[models.Medicine](docs)
	if err != nil {
		return 0, err
	}
	return s.names.Count(ctx, len(meds), func(ctx context.Context, i int) (bool, error) {
		m := meds[i]
		if err := s.fillNames(ctx, &m); err != nil {
			return false, err
		}
		set := bson.M{}
		if meds[i].CategoryName == "" && m.CategoryName != "" {
			set["categoryName"] = m.CategoryName
		}
		if meds[i].SubCategoryName == "" && m.SubCategoryName != "" {
			set["subCategoryName"] = m.SubCategoryName
		}
		if len(set) == 0 {
			return false, nil
		}
		if err := s.ds.Update(ctx, Collection, m.ID, set); err != nil {
			return false, err
		}
		return true, nil
	})
}
