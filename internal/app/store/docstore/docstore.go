// Package docstore is the document persistence boundary. Repositories
// address records by slash-separated collection paths such as
// "medicines" or "medicineCategories/med_1718000000000/subCategories",
// and each backend maps those paths onto its own storage layout.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Document is a stored record. The id lives under IDField.
type Document = bson.M

const (
	// IDField holds the document id.
	IDField = "_id"
	// ParentField holds the parent document id for nested collections.
	// Backends strip it before returning documents.
	ParentField = "_parent"
)

var (
	ErrNotFound  = errors.New("docstore: document not found")
	ErrDuplicate = errors.New("docstore: duplicate key")
)

// Store is implemented by every persistence backend.
type Store interface {
	// List returns every document in the collection.
	List(ctx context.Context, path string) ([]Document, error)
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, path, id string) (Document, error)
	// Create writes a new document. An empty id lets the backend assign one.
	// Creating over an existing id or a unique field value fails with ErrDuplicate.
	Create(ctx context.Context, path, id string, fields Document) (string, error)
	// Update merges fields into an existing document.
	Update(ctx context.Context, path, id string, fields Document) error
	// Delete is a no-op when the document does not exist.
	Delete(ctx context.Context, path, id string) error
	// QueryEquals returns documents whose field equals value.
	QueryEquals(ctx context.Context, path, field string, value any) ([]Document, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Location is a parsed collection path.
type Location struct {
	// Collection is the flattened collection name, with nested
	// collection names joined by ".".
	Collection string
	// Parent is the parent document path ("" at the top level).
	Parent string
}

// ParsePath splits a collection path. Paths alternate collection and
// document segments and must end with a collection.
func ParsePath(path string) (Location, error) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs)%2 == 0 {
		return Location{}, fmt.Errorf("docstore: %q is not a collection path", path)
	}
	var colls, parents []string
	for i, s := range segs {
		if s == "" {
			return Location{}, fmt.Errorf("docstore: empty segment in %q", path)
		}
		if i%2 == 0 {
			colls = append(colls, s)
		} else {
			parents = append(parents, s)
		}
	}
	return Location{
		Collection: strings.Join(colls, "."),
		Parent:     strings.Join(parents, "/"),
	}, nil
}

// Join builds a collection path from alternating segments.
func Join(segs ...string) string {
	return strings.Join(segs, "/")
}

// Encode converts a bson-tagged struct into a Document.
func Encode(v any) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode fills a bson-tagged struct from a Document.
func Decode(doc Document, v any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

// DecodeAll decodes every document into a new T.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := Decode(d, &v); err != nil {
			return nil, fmt.Errorf("decode %v: %w", d[IDField], err)
		}
		out = append(out, v)
	}
	return out, nil
}
