// internal/app/store/subcategories/subcategorystore.go
// Package subcategorystore manages sub-categories nested under a
// category document. The owning domain is read from the parent
// category id prefix.
package subcategorystore

import (
	"context"
	"errors"
	"time"

	categorystore "github.com/medisow/medisowadmin/internal/app/store/categories"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

type Options struct {
	// StrictDomainIDs rejects parent ids without a known prefix instead
	// of treating them as medicine categories.
	StrictDomainIDs bool
	// Concurrency caps the parallel reads made by ListAll.
	Concurrency int
}

type Store struct {
	ds   docstore.Store
	cats *categorystore.Store
	opts Options
	now  func() time.Time
}

func New(ds docstore.Store, cats *categorystore.Store, opts Options) *Store {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Store{ds: ds, cats: cats, opts: opts, now: time.Now}
}

// DomainOf maps a parent category id to its domain.
func (s *Store) DomainOf(parentID string) (models.Domain, error) {
	if d, ok := models.DomainOfCategoryID(parentID); ok {
		return d, nil
	}
	if s.opts.StrictDomainIDs {
		return "", &models.UnknownDomainError{Value: parentID}
	}
	return models.DomainMedicine, nil
}

func path(d models.Domain, parentID string) string {
	return docstore.Join(d.CategoryCollection(), parentID, "subCategories")
}

func (s *Store) List(ctx context.Context, parentID string) ([]models.SubCategory, error) {
	d, err := s.DomainOf(parentID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, d, parentID)
}

func (s *Store) list(ctx context.Context, d models.Domain, parentID string) ([]models.SubCategory, error) {
	docs, err := s.ds.List(ctx, path(d, parentID))
	if err != nil {
		return nil, err
	}
	subs, err := docstore.DecodeAll[models.SubCategory](docs)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		subs[i].ParentCategoryID = parentID
	}
	return subs, nil
}

// ListAll returns the sub-categories of every category in every domain,
// grouped by domain and then by category in list order.
func (s *Store) ListAll(ctx context.Context) ([]models.SubCategory, error) {
	type parent struct {
		domain models.Domain
		cat    models.Category
	}
	var parents []parent
	for _, d := range models.Domains {
		cats, err := s.cats.List(ctx, d)
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			parents = append(parents, parent{domain: d, cat: c})
		}
	}

	results := make([][]models.SubCategory, len(parents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, p := range parents {
		g.Go(func() error {
			subs, err := s.list(gctx, p.domain, p.cat.ID)
			if err != nil {
				return err
			}
			for j := range subs {
				subs[j].ParentCategoryName = p.cat.Name
			}
			results[i] = subs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.SubCategory
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// GetByID returns nil when the sub-category does not exist. The parent
// name is read from the live parent rather than the stored copy.
func (s *Store) GetByID(ctx context.Context, parentID, id string) (*models.SubCategory, error) {
	d, err := s.DomainOf(parentID)
	if err != nil {
		return nil, err
	}
	doc, err := s.ds.Get(ctx, path(d, parentID), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sub models.SubCategory
	if err := docstore.Decode(doc, &sub); err != nil {
		return nil, err
	}
	sub.ParentCategoryID = parentID

	parent, err := s.cats.GetByID(ctx, d, parentID)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		sub.ParentCategoryName = parent.Name
	}
	return &sub, nil
}

// Create copies the parent's current name into the new record.
func (s *Store) Create(ctx context.Context, parentID string, in models.SubCategory) (string, error) {
	d, err := s.DomainOf(parentID)
	if err != nil {
		return "", err
	}
	parent, err := s.cats.GetByID(ctx, d, parentID)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", &models.NotFoundError{Kind: "parent category", ID: parentID}
	}

	fields := bson.M{
		"name":               in.Name,
		"parentCategoryId":   parentID,
		"parentCategoryName": parent.Name,
		"createdAt":          s.now().UTC(),
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	return s.ds.Create(ctx, path(d, parentID), "", fields)
}

// Update leaves parentCategoryName as stored.
func (s *Store) Update(ctx context.Context, parentID, id string, p models.SubCategoryPatch) error {
	d, err := s.DomainOf(parentID)
	if err != nil {
		return err
	}
	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err = s.ds.Update(ctx, path(d, parentID), id, set)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.NotFoundError{Kind: "sub-category", ID: id}
	}
	return err
}

// Delete refuses to remove a sub-category that items still reference.
func (s *Store) Delete(ctx context.Context, parentID, id string) error {
	d, err := s.DomainOf(parentID)
	if err != nil {
		return err
	}
	deps, err := s.ds.QueryEquals(ctx, d.ItemCollection(), "subCategoryId", id)
	if err != nil {
		return err
	}
	if len(deps) > 0 {
		return &models.ReferentialIntegrityError{
			Kind:       "sub-category",
			Domain:     d,
			Collection: d.ItemCollection(),
		}
	}
	return s.ds.Delete(ctx, path(d, parentID), id)
}
