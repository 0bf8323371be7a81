// internal/app/system/blob/s3.go
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config configures an S3 store.
type S3Config struct {
	Region string
	Bucket string
	// Prefix is prepended to every object key.
	Prefix string
	// PublicURL is the base URL objects are served from. Defaults to the
	// bucket's virtual-hosted endpoint.
	PublicURL string
}

type S3 struct {
	api     ObjectAPI
	bucket  string
	prefix  string
	baseURL string
}

// NewS3 loads AWS credentials from the default chain.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}
	return NewS3WithAPI(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3WithAPI builds a store over an existing client.
func NewS3WithAPI(api ObjectAPI, cfg S3Config) *S3 {
	base := cfg.PublicURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3{api: api, bucket: cfg.Bucket, prefix: prefix, baseURL: strings.TrimRight(base, "/")}
}

func (s *S3) Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error) {
	full := s.prefix + key
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(full),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("blob: put %s: %w", full, err)
	}
	return s.baseURL + "/" + full, nil
}

func (s *S3) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}
	_, err = s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blob: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*S3)(nil)
