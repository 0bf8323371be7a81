// Package boltstore implements docstore.Store on a single bbolt file.
// Each flattened collection is a bucket; keys are "{parent}\x00{id}" so
// children of one parent sit next to each other and list with a prefix
// scan. Documents are stored as BSON.
package boltstore

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	bolt "go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const keySep = "\x00"

type Store struct {
	db     *bolt.DB
	unique map[string][]string
}

type Option func(*Store)

// WithUnique enforces uniqueness of a non-empty string field within a
// collection path, the way a partial unique index would.
func WithUnique(path, field string) Option {
	return func(s *Store) {
		loc, err := docstore.ParsePath(path)
		if err != nil {
			return
		}
		s.unique[loc.Collection] = append(s.unique[loc.Collection], field)
	}
}

// Open opens (creating if needed) the database file at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	s := &Store{db: db, unique: map[string][]string{}}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func key(parent, id string) []byte {
	return []byte(parent + keySep + id)
}

func (s *Store) List(ctx context.Context, path string) ([]docstore.Document, error) {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return nil, err
	}
	var docs []docstore.Document
	err = s.db.View(func(tx *bolt.Tx) error {
		docs, err = scan(tx.Bucket([]byte(loc.Collection)), loc.Parent)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return docs, ctx.Err()
}

func (s *Store) Get(ctx context.Context, path, id string) (docstore.Document, error) {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return nil, err
	}
	var doc docstore.Document
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(loc.Collection))
		if b == nil {
			return docstore.ErrNotFound
		}
		raw := b.Get(key(loc.Parent, id))
		if raw == nil {
			return docstore.ErrNotFound
		}
		return bson.Unmarshal(raw, &doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) Create(ctx context.Context, path, id string, fields docstore.Document) (string, error) {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	doc := docstore.Document{}
	for k, v := range fields {
		if k == docstore.ParentField {
			continue
		}
		doc[k] = v
	}
	doc[docstore.IDField] = id

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(loc.Collection))
		if err != nil {
			return err
		}
		k := key(loc.Parent, id)
		if b.Get(k) != nil {
			return docstore.ErrDuplicate
		}
		if err := s.checkUnique(b, loc.Collection, k, doc); err != nil {
			return err
		}
		return put(b, k, doc)
	})
	if err != nil {
		return "", fmt.Errorf("create %s/%s: %w", path, id, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, path, id string, fields docstore.Document) error {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(loc.Collection))
		if b == nil {
			return docstore.ErrNotFound
		}
		k := key(loc.Parent, id)
		raw := b.Get(k)
		if raw == nil {
			return docstore.ErrNotFound
		}
		var doc docstore.Document
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("update %s/%s: %w", path, id, err)
		}
		for f, v := range fields {
			if f == docstore.IDField || f == docstore.ParentField {
				continue
			}
			doc[f] = v
		}
		if err := s.checkUnique(b, loc.Collection, k, doc); err != nil {
			return fmt.Errorf("update %s/%s: %w", path, id, err)
		}
		return put(b, k, doc)
	})
}

func (s *Store) Delete(ctx context.Context, path, id string) error {
	loc, err := docstore.ParsePath(path)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(loc.Collection))
		if b == nil {
			return nil
		}
		return b.Delete(key(loc.Parent, id))
	})
}

// QueryEquals compares values with reflect.DeepEqual after BSON
// round-tripping the probe, so a string matches a stored string.
func (s *Store) QueryEquals(ctx context.Context, path, field string, value any) ([]docstore.Document, error) {
	docs, err := s.List(ctx, path)
	if err != nil {
		return nil, err
	}
	probe, err := normalize(value)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", path, field, err)
	}
	var out []docstore.Document
	for _, d := range docs {
		if v, ok := d[field]; ok && reflect.DeepEqual(v, probe) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(*bolt.Tx) error { return nil })
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func (s *Store) checkUnique(b *bolt.Bucket, collection string, self []byte, doc docstore.Document) error {
	for _, field := range s.unique[collection] {
		v, _ := doc[field].(string)
		if v == "" {
			continue
		}
		c := b.Cursor()
		for k, raw := c.First(); k != nil; k, raw = c.Next() {
			if bytes.Equal(k, self) {
				continue
			}
			var other docstore.Document
			if err := bson.Unmarshal(raw, &other); err != nil {
				return err
			}
			if o, _ := other[field].(string); o == v {
				return docstore.ErrDuplicate
			}
		}
	}
	return nil
}

func scan(b *bolt.Bucket, parent string) ([]docstore.Document, error) {
	if b == nil {
		return nil, nil
	}
	prefix := []byte(parent + keySep)
	var docs []docstore.Document
	c := b.Cursor()
	for k, raw := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, raw = c.Next() {
		var doc docstore.Document
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func put(b *bolt.Bucket, k []byte, doc docstore.Document) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return b.Put(k, raw)
}

// normalize gives value the type it would have after a BSON round trip.
func normalize(value any) (any, error) {
	raw, err := bson.Marshal(bson.M{"v": value})
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m["v"], nil
}

var _ docstore.Store = (*Store)(nil)
