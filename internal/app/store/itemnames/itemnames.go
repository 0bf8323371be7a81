// Package itemnames resolves the category and sub-category names that
// items carry as denormalized copies.
package itemnames

import (
	"context"
	"errors"

	categorystore "github.com/medisow/medisowadmin/internal/app/store/categories"
	subcategorystore "github.com/medisow/medisowadmin/internal/app/store/subcategories"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

type Resolver struct {
	cats  *categorystore.Store
	subs  *subcategorystore.Store
	limit int
}

// New returns a resolver. subs may be nil for domains without
// sub-categories.
func New(cats *categorystore.Store, subs *subcategorystore.Store, limit int) *Resolver {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Resolver{cats: cats, subs: subs, limit: limit}
}

// CategoryName returns "" when the category does not exist.
func (r *Resolver) CategoryName(ctx context.Context, d models.Domain, categoryID string) (string, error) {
	if categoryID == "" {
		return "", nil
	}
	c, err := r.cats.GetByID(ctx, d, categoryID)
	if err != nil || c == nil {
		return "", err
	}
	return c.Name, nil
}

// SubCategoryName needs the parent category id to locate the record.
func (r *Resolver) SubCategoryName(ctx context.Context, categoryID, subCategoryID string) (string, error) {
	if r.subs == nil || categoryID == "" || subCategoryID == "" {
		return "", nil
	}
	s, err := r.subs.GetByID(ctx, categoryID, subCategoryID)
	var ude *models.UnknownDomainError
	if errors.As(err, &ude) {
		return "", nil
	}
	if err != nil || s == nil {
		return "", err
	}
	return s.Name, nil
}

// Each calls fn for indexes 0..n-1 with at most the resolver's
// concurrency limit in flight.
func (r *Resolver) Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(gctx, i) })
	}
	return g.Wait()
}

// Count calls fn like Each and returns how many calls reported true.
func (r *Resolver) Count(ctx context.Context, n int, fn func(ctx context.Context, i int) (bool, error)) (int, error) {
	hit := make([]bool, n)
	err := r.Each(ctx, n, func(ctx context.Context, i int) error {
		ok, err := fn(ctx, i)
		hit[i] = ok
		return err
	})
	count := 0
	for _, h := range hit {
		if h {
			count++
		}
	}
	return count, err
}
