// Package mongostore implements docstore.Store on MongoDB. Nested
// collections are flattened into one Mongo collection per nesting level
// ("medicineCategories.subCategories") with the parent id kept in
// docstore.ParentField.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Database exposes the underlying database for schema setup.
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) locate(path string) (*mongo.Collection, bson.M, error) {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return nil, nil, err
	}
	filter := bson.M{}
	if loc.Parent != "" {
		filter[docstore.ParentField] = loc.Parent
	}
	return s.db.Collection(loc.Collection), filter, nil
}

func (s *Store) List(ctx context.Context, path string) ([]docstore.Document, error) {
	c, filter, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, c, filter)
}

func (s *Store) Get(ctx context.Context, path, id string) (docstore.Document, error) {
	c, filter, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	filter[docstore.IDField] = id
	var doc docstore.Document
	if err := c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", path, id, err)
	}
	delete(doc, docstore.ParentField)
	return doc, nil
}

func (s *Store) Create(ctx context.Context, path, id string, fields docstore.Document) (string, error) {
	c, filter, err := s.locate(path)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	doc := make(bson.M, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc[docstore.IDField] = id
	if p, ok := filter[docstore.ParentField]; ok {
		doc[docstore.ParentField] = p
	}
	if _, err := c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return "", fmt.Errorf("create %s/%s: %w", path, id, docstore.ErrDuplicate)
		}
		return "", fmt.Errorf("create %s/%s: %w", path, id, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, path, id string, fields docstore.Document) error {
	c, filter, err := s.locate(path)
	if err != nil {
		return err
	}
	filter[docstore.IDField] = id
	set := bson.M{}
	for k, v := range fields {
		if k == docstore.IDField || k == docstore.ParentField {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		n, err := c.CountDocuments(ctx, filter)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", path, id, err)
		}
		if n == 0 {
			return docstore.ErrNotFound
		}
		return nil
	}
	res, err := c.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return fmt.Errorf("update %s/%s: %w", path, id, docstore.ErrDuplicate)
		}
		return fmt.Errorf("update %s/%s: %w", path, id, err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path, id string) error {
	c, filter, err := s.locate(path)
	if err != nil {
		return err
	}
	filter[docstore.IDField] = id
	if _, err := c.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete %s/%s: %w", path, id, err)
	}
	return nil
}

func (s *Store) QueryEquals(ctx context.Context, path, field string, value any) ([]docstore.Document, error) {
	c, filter, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	filter[field] = value
	return s.find(ctx, c, filter)
}

func (s *Store) find(ctx context.Context, c *mongo.Collection, filter bson.M) ([]docstore.Document, error) {
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}
	defer cur.Close(ctx)
	var docs []docstore.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}
	for _, d := range docs {
		delete(d, docstore.ParentField)
	}
	return docs, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

var _ docstore.Store = (*Store)(nil)
