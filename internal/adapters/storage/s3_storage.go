// Package storage keeps avatar images in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const avatarPrefix = "avatars"

// ErrNotConfigured is returned by every operation when no bucket is set.
var ErrNotConfigured = errors.New("object storage is not configured")

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage uploads objects under a publicly served prefix and addresses them by key.
type S3Storage struct {
	client    objectAPI
	bucket    string
	publicURL string
}

var _ portssvc.ObjectStorage = (*S3Storage)(nil)

// NewS3Storage builds a client for cfg. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return &S3Storage{}, nil
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Storage{client: client, bucket: cfg.Bucket, publicURL: publicBaseURL(cfg)}, nil
}

func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.BaseEndpoint != "":
		return strings.TrimRight(cfg.BaseEndpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// objectKey is avatars/<yyyy>/<mm>/<uuid><ext>.
func objectKey(filePath string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	return path.Join(avatarPrefix, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

func (s *S3Storage) Upload(ctx context.Context, filePath string) (domain.StoredObject, error) {
	if s.client == nil {
		return domain.StoredObject{}, ErrNotConfigured
	}
	f, err := os.Open(filePath)
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := objectKey(filePath, time.Now().UTC())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return domain.StoredObject{URL: s.publicURL + "/" + key, Ref: key}, nil
}

func (s *S3Storage) Delete(ctx context.Context, ref string) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", ref, err)
	}
	return nil
}
