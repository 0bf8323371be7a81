// internal/app/store/notifications/notificationstore.go
// Package notificationstore keeps the push notification send log.
package notificationstore

import (
	"context"
	"sort"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

const Collection = "notifications"

type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

// Append writes one log row.
func (s *Store) Append(ctx context.Context, n models.Notification) (string, error) {
	n.ID = ""
	n.SentAt = n.SentAt.UTC()
	fields, err := docstore.Encode(n)
	if err != nil {
		return "", err
	}
	return s.ds.Create(ctx, Collection, "", fields)
}

// History returns the log newest first.
func (s *Store) History(ctx context.Context) ([]models.Notification, error) {
	docs, err := s.ds.List(ctx, Collection)
	if err != nil {
		return nil, err
	}
	out, err := docstore.DecodeAll[models.Notification](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}
