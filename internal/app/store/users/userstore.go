// Package userstore reads and deletes consumer app accounts. The mobile
// client owns these documents, so field types vary between records and
// decoding converts them where it can.
package userstore

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "users"

type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	docs, err := s.ds.List(ctx, Collection)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		u, err := Decode(d)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// GetByID returns nil when the user does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.ds.Delete(ctx, Collection, id)
}

// Decode converts a stored user document. Numbers stored as strings,
// timestamps stored as strings or epoch values and ObjectID ids are
// accepted; unknown fields are ignored.
func Decode(doc docstore.Document) (models.User, error) {
	var u models.User
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook,
		WeaklyTypedInput: true,
		Result:           &u,
	})
	if err != nil {
		return u, err
	}
	if err := dec.Decode(map[string]any(doc)); err != nil {
		return u, err
	}
	return u, nil
}

var timeType = reflect.TypeOf(time.Time{})

func decodeHook(from, to reflect.Type, data any) (any, error) {
	switch v := data.(type) {
	case primitive.ObjectID:
		if to.Kind() == reflect.String {
			return v.Hex(), nil
		}
	case primitive.DateTime:
		if to == timeType {
			return v.Time().UTC(), nil
		}
		if to.Kind() == reflect.String {
			return v.Time().UTC().Format(time.RFC3339), nil
		}
	case primitive.A:
		return []any(v), nil
	case primitive.D:
		if to == timeType {
			return timestamp(v.Map()), nil
		}
	case primitive.M:
		if to == timeType {
			return timestamp(v), nil
		}
	}
	if to == timeType && from != timeType {
		return cast.ToTimeE(data)
	}
	return data, nil
}

// timestamp reads a {seconds, nanoseconds} document.
func timestamp(m primitive.M) time.Time {
	sec := cast.ToInt64(m["seconds"])
	nsec := cast.ToInt64(m["nanoseconds"])
	return time.Unix(sec, nsec).UTC()
}

// Search keeps users whose name, email, phone number or institution
// contains q, ignoring case.
func Search(users []models.User, q string) []models.User {
	needle := text.Fold(strings.TrimSpace(q))
	if needle == "" {
		return users
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		for _, f := range []string{u.Name, u.Email, u.Number, u.Institution} {
			if strings.Contains(text.Fold(f), needle) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
