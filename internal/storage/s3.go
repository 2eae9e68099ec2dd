package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"servicemap/internal/config"
	"servicemap/internal/models"
	"servicemap/internal/source"
)

// S3Service is a client for S3-compatible storage holding services datasets.
type S3Service struct {
	client *minio.Client
	log    *slog.Logger
}

// NewS3Service connects to the MinIO endpoint in cfg.
func NewS3Service(cfg config.MinIOConfig, log *slog.Logger) (*S3Service, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Info("minio_client_ready", slog.String("endpoint", cfg.Endpoint))
	return &S3Service{client: client, log: log}, nil
}

// CreateBucket makes the bucket unless it already exists.
func (s *S3Service) CreateBucket(ctx context.Context, bucketName, location string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", bucketName, err)
	}
	return nil
}

// PutServices stores the dataset as one JSON array, replacing any previous version.
func (s *S3Service) PutServices(ctx context.Context, bucketName, objectKey string, records []models.ServiceRecord) error {
	if records == nil {
		records = []models.ServiceRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal services to JSON: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}

	s.log.Info("services_published",
		slog.String("bucket", bucketName),
		slog.String("key", objectKey),
		slog.Int("count", len(records)),
	)
	return nil
}

// GetServices streams and decodes the dataset stored under objectKey.
func (s *S3Service) GetServices(ctx context.Context, bucketName, objectKey string) ([]models.ServiceRecord, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	records, err := source.Decode(object)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("services object %s/%s does not exist: %w", bucketName, objectKey, err)
		}
		return nil, err
	}
	return records, nil
}

// S3Source adapts S3Service to source.Source for one bucket/key.
type S3Source struct {
	svc    *S3Service
	bucket string
	key    string
}

func NewS3Source(svc *S3Service, bucket, key string) *S3Source {
	return &S3Source{svc: svc, bucket: bucket, key: key}
}

func (s *S3Source) Name() string { return fmt.Sprintf("s3:%s/%s", s.bucket, s.key) }

func (s *S3Source) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	return s.svc.GetServices(ctx, s.bucket, s.key)
}
