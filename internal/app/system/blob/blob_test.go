package blob_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/medisow/medisowadmin/internal/app/system/blob"
	"github.com/spf13/afero"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\scan 1.jpg`, "scan_1.jpg"},
		{"", "file"},
		{"ünï.png", "__n__.png"},
		{strings.Repeat("a", 150) + ".jpeg", strings.Repeat("a", 95) + ".jpeg"},
	}
	for _, tt := range tests {
		if got := blob.SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeys(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	key := blob.ObjectKey("labReports", "cbc.png", now)
	if !regexp.MustCompile(`^labReports/2024/03/[0-9a-f]{8}-cbc\.png$`).MatchString(key) {
		t.Errorf("ObjectKey: %q", key)
	}
	if got := blob.TimestampedKey("vouchers", "promo.jpg", now); got != "vouchers/1709942400000-promo.jpg" {
		t.Errorf("TimestampedKey: %q", got)
	}
}

func TestLocal_UploadDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := blob.NewLocal(fs, "/data/uploads", "http://localhost:8080/files/")
	ctx := context.Background()

	url, err := store.Upload(ctx, strings.NewReader("img"), "vouchers/1-a.png", "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "http://localhost:8080/files/vouchers/1-a.png" {
		t.Errorf("url: %q", url)
	}
	data, err := afero.ReadFile(fs, "/data/uploads/vouchers/1-a.png")
	if err != nil || string(data) != "img" {
		t.Fatalf("stored file: %q, %v", data, err)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/data/uploads/vouchers/1-a.png"); ok {
		t.Error("file should be removed")
	}
	if err := store.Delete(ctx, url); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if err := store.Delete(ctx, "https://elsewhere.example.com/x.png"); !errors.Is(err, blob.ErrForeignURL) {
		t.Errorf("expected ErrForeignURL, got %v", err)
	}
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_UploadDelete(t *testing.T) {
	api := &fakeS3{}
	store := blob.NewS3WithAPI(api, blob.S3Config{Region: "ap-south-1", Bucket: "medisow", Prefix: "/media/"})
	ctx := context.Background()

	url, err := store.Upload(ctx, strings.NewReader("x"), "categories/2024/01/abcd1234-a.png", "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	want := "https://medisow.s3.ap-south-1.amazonaws.com/media/categories/2024/01/abcd1234-a.png"
	if url != want {
		t.Errorf("url: got %q, want %q", url, want)
	}
	if len(api.puts) != 1 || aws.ToString(api.puts[0].ContentType) != "image/png" || aws.ToString(api.puts[0].Bucket) != "medisow" {
		t.Errorf("put input: %+v", api.puts)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(api.deletes) != 1 || api.deletes[0] != "media/categories/2024/01/abcd1234-a.png" {
		t.Errorf("deletes: %v", api.deletes)
	}
}
