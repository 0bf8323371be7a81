// internal/app/store/templates/templatestore.go
// Package templatestore holds the storage logic shared by prescription and
// lab report templates. Both carry a denormalized category name and have
// no sub-categories.
package templatestore

import (
	"context"
	"errors"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Record is a template type stored by this package.
type Record interface {
	models.Prescription | models.LabReport
}

// Config names the collection and category domain of one template kind.
type Config struct {
	Collection string
	Domain     models.Domain
	// Kind is used in NotFoundError.
	Kind string
}

type Store[T Record] struct {
	ds    docstore.Store
	names *itemnames.Resolver
	cfg   Config
	now   func() time.Time
}

func New[T Record](ds docstore.Store, names *itemnames.Resolver, cfg Config) *Store[T] {
	return &Store[T]{ds: ds, names: names, cfg: cfg, now: time.Now}
}

// List returns every template, or those in categoryID when it is set.
func (s *Store[T]) List(ctx context.Context, categoryID string) ([]T, error) {
	var (
		docs []docstore.Document
		err  error
	)
	if categoryID != "" {
		docs, err = s.ds.QueryEquals(ctx, s.cfg.Collection, "categoryId", categoryID)
	} else {
		docs, err = s.ds.List(ctx, s.cfg.Collection)
	}
	if err != nil {
		return nil, err
	}
	items, err := docstore.DecodeAll[T](docs)
	if err != nil {
		return nil, err
	}
	err = s.names.Each(ctx, len(items), func(ctx context.Context, i int) error {
		_, err := s.fillName(ctx, &items[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns nil when the template does not exist.
func (s *Store[T]) GetByID(ctx context.Context, id string) (*T, error) {
	doc, err := s.ds.Get(ctx, s.cfg.Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := docstore.Decode(doc, &v); err != nil {
		return nil, err
	}
	if _, err := s.fillName(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// fillName sets a missing category name and reports whether it did.
func (s *Store[T]) fillName(ctx context.Context, v *T) (bool, error) {
	t := models.Template(*v)
	if t.CategoryName != "" || t.CategoryID == "" {
		return false, nil
	}
	name, err := s.names.CategoryName(ctx, s.cfg.Domain, t.CategoryID)
	if err != nil || name == "" {
		return false, err
	}
	t.CategoryName = name
	*v = T(t)
	return true, nil
}

func (s *Store[T]) Create(ctx context.Context, in T) (string, error) {
	if _, err := s.fillName(ctx, &in); err != nil {
		return "", err
	}
	t := models.Template(in)
	images := t.ImagesURL
	if images == nil {
		images = []string{}
	}
	fields := bson.M{
		"title":       t.Title,
		"description": t.Description,
		"images_url":  images,
		"createdAt":   s.now().UTC(),
	}
	if t.CategoryID != "" {
		fields["categoryId"] = t.CategoryID
	}
	if t.CategoryName != "" {
		fields["categoryName"] = t.CategoryName
	}
	return s.ds.Create(ctx, s.cfg.Collection, "", fields)
}

// Update resolves the category name when the category changes without one.
func (s *Store[T]) Update(ctx context.Context, id string, p models.TemplatePatch) error {
	if p.CategoryID != nil && *p.CategoryID != "" && p.CategoryName == nil {
		name, err := s.names.CategoryName(ctx, s.cfg.Domain, *p.CategoryID)
		if err != nil {
			return err
		}
		if name != "" {
			p.CategoryName = &name
		}
	}
	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err := s.ds.Update(ctx, s.cfg.Collection, id, set)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.NotFoundError{Kind: s.cfg.Kind, ID: id}
	}
	return err
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	return s.ds.Delete(ctx, s.cfg.Collection, id)
}

// Backfill persists missing category names and returns the number of
// records written.
func (s *Store[T]) Backfill(ctx context.Context) (int, error) {
	docs, err := s.ds.List(ctx, s.cfg.Collection)
	if err != nil {
		return 0, err
	}
	items, err := docstore.DecodeAll[T](docs)
	if err != nil {
		return 0, err
	}
	return s.names.Count(ctx, len(items), func(ctx context.Context, i int) (bool, error) {
		v := items[i]
		filled, err := s.fillName(ctx, &v)
		if err != nil || !filled {
			return false, err
		}
		t := models.Template(v)
		if err := s.ds.Update(ctx, s.cfg.Collection, t.ID, bson.M{"categoryName": t.CategoryName}); err != nil {
			return false, err
		}
		return true, nil
	})
}
