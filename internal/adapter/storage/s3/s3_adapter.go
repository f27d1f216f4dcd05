package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// objectAPI is the part of *minio.Client the adapter needs.
type objectAPI interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ImageStorage uploads listing photos to an S3-compatible bucket.
type ImageStorage struct {
	client       objectAPI
	bucket       string
	prefix       string
	baseURL      string
	cacheControl string
	failures     *prometheus.CounterVec
	logger       *logger.Logger
	newName      func() string
}

// NewImageStorage connects to the object store and makes sure the bucket exists.
// failures may be nil.
func NewImageStorage(ctx context.Context, cfg config.StorageConfig, failures *prometheus.CounterVec, log *logger.Logger) (*ImageStorage, error) {
	log.Info("Initializing S3 MinIO Storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL),
	)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, errBucketExists)
		}
		log.Info("S3Storage: Bucket already exists", zap.String("bucket", cfg.Bucket))
	} else {
		log.Info("S3Storage: Bucket created", zap.String("bucket", cfg.Bucket))
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}
	return newImageStorage(client, cfg, baseURL, failures, log), nil
}

func newImageStorage(client objectAPI, cfg config.StorageConfig, baseURL string, failures *prometheus.CounterVec, log *logger.Logger) *ImageStorage {
	maxAge := cfg.CacheMaxAge
	if maxAge <= 0 {
		maxAge = 3600
	}
	return &ImageStorage{
		client:       client,
		bucket:       cfg.Bucket,
		prefix:       strings.Trim(cfg.PathPrefix, "/"),
		baseURL:      strings.TrimRight(baseURL, "/"),
		cacheControl: fmt.Sprintf("max-age=%d", maxAge),
		failures:     failures,
		logger:       log.Named("ImageStorage"),
		newName:      func() string { return uuid.New().String() },
	}
}

// Upload stores a data-URI image under a fresh UUID and returns its name and public URL.
// An empty input returns nil, nil without touching the network. Every failure is a
// *domain.UploadError.
func (s *ImageStorage) Upload(ctx context.Context, dataURI string) (*domain.StoredImage, error) {
	if strings.TrimSpace(dataURI) == "" {
		return nil, nil
	}

	img, err := domain.ParseDataURI(dataURI)
	if err != nil {
		return nil, &domain.UploadError{Stage: domain.UploadStageDecode, Err: err}
	}

	name := s.newName()
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}

	// Best-effort no-overwrite: stat then put is not an atomic conditional write. The
	// fresh UUID key is what keeps concurrent uploads apart.
	_, err = s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	switch {
	case err == nil:
		return nil, &domain.UploadError{Stage: domain.UploadStageStat, Err: fmt.Errorf("%w: %s/%s", domain.ErrObjectExists, s.bucket, key)}
	case minio.ToErrorResponse(err).Code != "NoSuchKey":
		return nil, &domain.UploadError{Stage: domain.UploadStageStat, Err: err}
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType:  img.MIMEType,
		CacheControl: s.cacheControl,
	})
	if err != nil {
		return nil, &domain.UploadError{Stage: domain.UploadStagePut, Err: err}
	}

	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
	s.logger.Info("Image uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.String("etag", info.ETag),
		zap.Int("size_bytes", len(img.Data)),
	)
	return &domain.StoredImage{ImageName: name, ImageURL: url}, nil
}

// Store is Upload with failures degraded to nil. A failure is logged once and
// counted in the upload failure metric, labelled by stage.
func (s *ImageStorage) Store(ctx context.Context, dataURI string) *domain.StoredImage {
	stored, err := s.Upload(ctx, dataURI)
	if err == nil {
		return stored
	}

	stage := "unknown"
	var uerr *domain.UploadError
	if errors.As(err, &uerr) {
		stage = string(uerr.Stage)
	}
	s.logger.Error("Image upload failed, continuing without image", zap.String("stage", stage), zap.Error(err))
	if s.failures != nil {
		s.failures.WithLabelValues(stage).Inc()
	}
	return nil
}
