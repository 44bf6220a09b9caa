// Package storage keeps raw order import documents in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/orderimport"
	infraconfig "github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var (
	_ orderimport.ImportArchive = (*S3ImportArchive)(nil)
	_ orderimport.ImportArchive = NoopArchive{}
)

const (
	archivePrefix      = "imports"
	archiveContentType = "application/json"
)

// S3ImportArchive writes each committed import document to a bucket under
// imports/YYYY/MM/DD/<order id>.json. Works with AWS S3, MinIO and RustFS.
type S3ImportArchive struct {
	client      *s3.Client
	bucket      string
	logger      *zap.Logger
	now         func() time.Time
	maxAttempts int
}

// S3ImportArchiveOption configures an S3ImportArchive
type S3ImportArchiveOption func(*S3ImportArchive)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3ImportArchiveOption {
	return func(a *S3ImportArchive) {
		a.logger = logger
	}
}

// WithClock overrides the clock used to build object keys
func WithClock(now func() time.Time) S3ImportArchiveOption {
	return func(a *S3ImportArchive) {
		a.now = now
	}
}

// WithMaxAttempts caps SDK retries per request
func WithMaxAttempts(n int) S3ImportArchiveOption {
	return func(a *S3ImportArchive) {
		a.maxAttempts = n
	}
}

// NewS3ImportArchive creates an archive from storage configuration
func NewS3ImportArchive(cfg *infraconfig.StorageConfig, opts ...S3ImportArchiveOption) (*S3ImportArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	archive := &S3ImportArchive{
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(archive)
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	archive.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
		// S3-compatible servers reject the default trailing checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if archive.maxAttempts > 0 {
			o.RetryMaxAttempts = archive.maxAttempts
		}
	})
	return archive, nil
}

// Key returns the object key for an order archived at the given time
func Key(orderID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", archivePrefix, at.UTC().Format("2006/01/02"), orderID)
}

// Store uploads raw under the order's key
func (a *S3ImportArchive) Store(ctx context.Context, orderID uuid.UUID, raw []byte) error {
	if orderID == uuid.Nil {
		return errors.New("order id is required")
	}
	key := Key(orderID, a.now())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(archiveContentType),
		Metadata:    map[string]string{"order-id": orderID.String()},
	})
	if err != nil {
		return fmt.Errorf("failed to archive import %s: %w", orderID, err)
	}

	a.logger.Debug("Archived import payload",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(raw)))
	return nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (a *S3ImportArchive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating import archive bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Bucket returns the bucket name
func (a *S3ImportArchive) Bucket() string {
	return a.bucket
}

// NoopArchive discards documents; used when archiving is disabled
type NoopArchive struct{}

func (NoopArchive) Store(context.Context, uuid.UUID, []byte) error {
	return nil
}
