package testutil

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// FakeBlobs is an in-memory blob.Store that records calls.
type FakeBlobs struct {
	mu      sync.Mutex
	Objects map[string][]byte // url -> body
	Deleted []string
	// FailUpload makes every Upload fail.
	FailUpload bool
}

func NewFakeBlobs() *FakeBlobs {
	return &FakeBlobs{Objects: map[string][]byte{}}
}

const FakeBlobBase = "https://blobs.test/"

func (f *FakeBlobs) Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error) {
	if f.FailUpload {
		return "", errors.New("fake upload failure")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := FakeBlobBase + key
	f.mu.Lock()
	f.Objects[url] = body
	f.mu.Unlock()
	return url, nil
}

func (f *FakeBlobs) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, FakeBlobBase) {
		return errors.New("foreign url")
	}
	f.mu.Lock()
	delete(f.Objects, url)
	f.Deleted = append(f.Deleted, url)
	f.mu.Unlock()
	return nil
}

// Count returns the number of stored objects.
func (f *FakeBlobs) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Objects)
}
