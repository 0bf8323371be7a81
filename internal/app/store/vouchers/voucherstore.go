// internal/app/store/vouchers/voucherstore.go
// Package voucherstore manages promotional vouchers and reads the
// vouchers issued to users.
package voucherstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/system/blob"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

const Collection = "vouchers"

// Outcome reports a business-rule result. A duplicate code yields
// Success false with a message for the operator; storage failures are
// returned as errors instead.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Upload is an image attached to a create or update.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Store struct {
	ds    docstore.Store
	blobs blob.Store
	log   *zap.Logger
	now   func() time.Time
}

func New(ds docstore.Store, blobs blob.Store, logger *zap.Logger) *Store {
	return &Store{ds: ds, blobs: blobs, log: logger, now: time.Now}
}

func (s *Store) List(ctx context.Context) ([]models.Voucher, error) {
	docs, err := s.ds.List(ctx, Collection)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Voucher](docs)
}

// GetByID returns nil when the voucher does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Voucher, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v models.Voucher
	if err := docstore.Decode(doc, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) codeTaken(ctx context.Context, code string) (bool, error) {
	docs, err := s.ds.QueryEquals(ctx, Collection, "code", code)
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

func duplicate() Outcome {
	return Outcome{Success: false, Message: models.ErrDuplicateCode.Error()}
}

// Create checks the code, uploads img if given, then writes the voucher.
// The unique index on code catches a concurrent create that passes the
// same check.
func (s *Store) Create(ctx context.Context, in models.Voucher, img *Upload) (Outcome, error) {
	if in.Code != "" {
		taken, err := s.codeTaken(ctx, in.Code)
		if err != nil {
			return Outcome{}, err
		}
		if taken {
			return duplicate(), nil
		}
	}

	uploaded := ""
	if img != nil {
		url, err := s.upload(ctx, img)
		if err != nil {
			return Outcome{}, err
		}
		in.ImageURL, uploaded = url, url
	}

	in.ID = ""
	in.CreatedAt = s.now().UTC()
	in.UpdatedAt = nil
	fields, err := docstore.Encode(in)
	if err != nil {
		return Outcome{}, err
	}
	id, err := s.ds.Create(ctx, Collection, "", fields)
	if err != nil {
		s.discard(ctx, uploaded)
		if errors.Is(err, docstore.ErrDuplicate) {
			return duplicate(), nil
		}
		return Outcome{}, err
	}
	return Outcome{Success: true, ID: id}, nil
}

// Update re-checks the code only when it changes.
func (s *Store) Update(ctx context.Context, id string, p models.VoucherPatch, img *Upload) (Outcome, error) {
	if p.Code != nil && *p.Code != "" {
		cur, err := s.GetByID(ctx, id)
		if err != nil {
			return Outcome{}, err
		}
		if cur == nil {
			return Outcome{}, &models.NotFoundError{Kind: "voucher", ID: id}
		}
		if cur.Code != *p.Code {
			taken, err := s.codeTaken(ctx, *p.Code)
			if err != nil {
				return Outcome{}, err
			}
			if taken {
				return duplicate(), nil
			}
		}
	}

	uploaded := ""
	if img != nil {
		url, err := s.upload(ctx, img)
		if err != nil {
			return Outcome{}, err
		}
		p.ImageURL, uploaded = &url, url
	}

	set := p.Fields()
	set["updatedAt"] = s.now().UTC()
	err := s.ds.Update(ctx, Collection, id, set)
	switch {
	case err == nil:
		return Outcome{Success: true, ID: id}, nil
	case errors.Is(err, docstore.ErrDuplicate):
		s.discard(ctx, uploaded)
		return duplicate(), nil
	case errors.Is(err, docstore.ErrNotFound):
		s.discard(ctx, uploaded)
		return Outcome{}, &models.NotFoundError{Kind: "voucher", ID: id}
	}
	s.discard(ctx, uploaded)
	return Outcome{}, err
}

// Delete removes the voucher even if users hold issued copies of it.
func (s *Store) Delete(ctx context.Context, id string) (Outcome, error) {
	if err := s.ds.Delete(ctx, Collection, id); err != nil {
		return Outcome{}, err
	}
	return Outcome{Success: true, ID: id}, nil
}

// ListForUser returns the vouchers issued to userID.
func (s *Store) ListForUser(ctx context.Context, userID string) ([]models.UserVoucher, error) {
	docs, err := s.ds.List(ctx, docstore.Join("users", userID, "vouchers"))
	if err != nil {
		return nil, err
	}
	out, err := docstore.DecodeAll[models.UserVoucher](docs)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].UserID == "" {
			out[i].UserID = userID
		}
	}
	return out, nil
}

func (s *Store) upload(ctx context.Context, img *Upload) (string, error) {
	if s.blobs == nil {
		return "", fmt.Errorf("upload voucher image: %w", blob.ErrNotConfigured)
	}
	key := blob.TimestampedKey("vouchers", img.Filename, s.now())
	url, err := s.blobs.Upload(ctx, img.Body, key, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload voucher image: %w", err)
	}
	return url, nil
}

// discard removes an image uploaded for a write that did not happen.
func (s *Store) discard(ctx context.Context, url string) {
	if url == "" || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, url); err != nil {
		s.log.Warn("voucher image cleanup failed", zap.String("url", url), zap.Error(err))
	}
}

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength   = 8
)

// GenerateCode returns a random code drawn uniformly from [A-Z0-9]. It
// does not consult storage; writes still go through the uniqueness check.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
