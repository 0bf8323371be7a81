// internal/app/system/blob/blob.go
// Package blob stores uploaded images and hands back public URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrForeignURL is returned by Delete for URLs the store did not issue.
var ErrForeignURL = errors.New("blob: url does not belong to this store")

// ErrNotConfigured is returned by callers that were built without a store.
var ErrNotConfigured = errors.New("blob: image storage is not configured")

// Store is implemented by each blob backend.
type Store interface {
	// Upload writes r at key and returns its public URL.
	Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error)
	// Delete removes the object behind url.
	Delete(ctx context.Context, url string) error
}

// Folders that image uploads may target.
var Folders = []string{"categories", "medicines", "prescriptions", "labReports", "vouchers", "notifications"}

// ValidFolder reports whether folder is an accepted upload folder.
func ValidFolder(folder string) bool {
	for _, f := range Folders {
		if f == folder {
			return true
		}
	}
	return false
}

// ObjectKey returns "{folder}/YYYY/MM/{uuid8}-{filename}".
func ObjectKey(folder, filename string, now time.Time) string {
	now = now.UTC()
	return path.Join(folder,
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		uuid.New().String()[:8]+"-"+SanitizeFilename(filename))
}

// TimestampedKey returns "{folder}/{epochMillis}-{filename}".
func TimestampedKey(folder, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", folder, now.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename keeps the base name and replaces characters outside
// [A-Za-z0-9._-] with '_'. Long names are cut to 100 bytes, keeping a
// short extension.
func SanitizeFilename(filename string) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "." || filename == "/" {
		filename = ""
	}
	b := []byte(filename)
	for i, c := range b {
		if !allowed(c) {
			b[i] = '_'
		}
	}
	if len(b) == 0 {
		return "file"
	}
	if len(b) > 100 {
		ext := path.Ext(string(b))
		if ext != "" && len(ext) < 10 {
			b = append(b[:100-len(ext)], ext...)
		} else {
			b = b[:100]
		}
	}
	return string(b)
}

func allowed(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.' || c == '-' || c == '_'
}

// keyFromURL strips base from url.
func keyFromURL(base, url string) (string, error) {
	base = strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", ErrForeignURL
	}
	key := strings.TrimPrefix(url, base)
	if key == "" || strings.Contains(key, "..") {
		return "", ErrForeignURL
	}
	return key, nil
}
