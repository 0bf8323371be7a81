// internal/app/store/categories/categorystore.go
// Package categorystore manages the per-domain category collections.
package categorystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// maxIDAttempts bounds the sequence bumps tried when several categories
// are created in the same millisecond.
const maxIDAttempts = 16

type Store struct {
	ds  docstore.Store
	now func() time.Time
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) List(ctx context.Context, d models.Domain) ([]models.Category, error) {
	if !d.Valid() {
		return nil, &models.UnknownDomainError{Value: string(d)}
	}
	docs, err := s.ds.List(ctx, d.CategoryCollection())
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Category](docs)
}

// GetByID returns nil when the category does not exist.
func (s *Store) GetByID(ctx context.Context, d models.Domain, id string) (*models.Category, error) {
	if !d.Valid() {
		return nil, &models.UnknownDomainError{Value: string(d)}
	}
	doc, err := s.ds.Get(ctx, d.CategoryCollection(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c models.Category
	if err := docstore.Decode(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create stores a category under a synthesized "{prefix}_{millis}" id.
// When that id is taken the sequence is bumped, so ids stay unique and
// keep their prefix.
func (s *Store) Create(ctx context.Context, d models.Domain, in models.Category) (string, error) {
	if !d.Valid() {
		return "", &models.UnknownDomainError{Value: string(d)}
	}
	now := s.now().UTC()
	fields := bson.M{
		"name":      in.Name,
		"createdAt": now,
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}

	id := models.NewCategoryID(d, now)
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		created, err := s.ds.Create(ctx, d.CategoryCollection(), id.String(), fields)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, docstore.ErrDuplicate) {
			return "", err
		}
		id = id.Next()
	}
	return "", fmt.Errorf("create %s category: no free id after %d attempts", d, maxIDAttempts)
}

func (s *Store) Update(ctx context.Context, d models.Domain, id string, p models.CategoryPatch) error {
	if !d.Valid() {
		return &models.UnknownDomainError{Value: string(d)}
	}
	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err := s.ds.Update(ctx, d.CategoryCollection(), id, set)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.NotFoundError{Kind: "category", ID: id}
	}
	return err
}

// Delete refuses to remove a category that items still reference.
// The check and the delete are not atomic: an item created in between
// is left pointing at a missing category.
func (s *Store) Delete(ctx context.Context, d models.Domain, id string) error {
	if !d.Valid() {
		return &models.UnknownDomainError{Value: string(d)}
	}
	deps, err := s.ds.QueryEquals(ctx, d.ItemCollection(), "categoryId", id)
	if err != nil {
		return err
	}
	if len(deps) > 0 {
		return &models.ReferentialIntegrityError{
			Kind:       "category",
			Domain:     d,
			Collection: d.ItemCollection(),
		}
	}
	return s.ds.Delete(ctx, d.CategoryCollection(), id)
}
