// Package storage stores uploaded files in gocloud.dev blob buckets.
package storage

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"neighborhood/config"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob" // registers gs://
	"gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob" // registers s3://
)

type bucketOpener func(ctx context.Context, name string) (*blob.Bucket, error)

type blobStorage struct {
	open          bucketOpener
	publicBaseURL string
	logger        *slog.Logger

	mu      sync.Mutex
	buckets map[string]*blob.Bucket
}

// New creates the object storage for the configured driver.
func New(cfg *config.Config, logger *slog.Logger) (service.ObjectStorage, error) {
	opener, err := newOpener(cfg.Storage)
	if err != nil {
		return nil, err
	}

	return newBlobStorage(opener, cfg.Storage.PublicBaseURL, logger), nil
}

// NewMemoryStorage returns an in-memory storage, mostly for tests.
func NewMemoryStorage(publicBaseURL string, logger *slog.Logger) service.ObjectStorage {
	return newBlobStorage(memOpener(), publicBaseURL, logger)
}

func newBlobStorage(open bucketOpener, publicBaseURL string, logger *slog.Logger) *blobStorage {
	return &blobStorage{
		open:          open,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
		buckets:       make(map[string]*blob.Bucket),
	}
}

func newOpener(cfg *config.StorageConfig) (bucketOpener, error) {
	switch cfg.Driver {
	case constants.StorageDriverFile:
		root := cfg.Dir
		if root == "" {
			return nil, errors.New("storage.dir is required for the file driver")
		}

		return func(_ context.Context, name string) (*blob.Bucket, error) {
			return fileblob.OpenBucket(filepath.Join(root, name), &fileblob.Options{CreateDir: true})
		}, nil
	case constants.StorageDriverMem:
		return memOpener(), nil
	case constants.StorageDriverGCS, constants.StorageDriverS3:
		scheme, prefix := cfg.Driver, cfg.BucketPrefix

		return func(ctx context.Context, name string) (*blob.Bucket, error) {
			return blob.OpenBucket(ctx, scheme+"://"+prefix+name)
		}, nil
	default:
		return nil, errors.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

func memOpener() bucketOpener {
	return func(_ context.Context, _ string) (*blob.Bucket, error) {
		return memblob.OpenBucket(nil), nil
	}
}

func (s *blobStorage) bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[name]; ok {
		return b, nil
	}

	b, err := s.open(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", name)
	}
	s.buckets[name] = b

	return b, nil
}

// Upload writes the object and returns its public URL.
func (s *blobStorage) Upload(ctx context.Context, bucketName, path string, content []byte, contentType string) (string, error) {
	b, err := s.bucket(ctx, bucketName)
	if err != nil {
		return "", err
	}

	if err := b.WriteAll(ctx, path, content, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrapf(err, "write %s/%s", bucketName, path)
	}

	s.logger.DebugContext(ctx, "Object uploaded",
		slog.String("bucket", bucketName),
		slog.String("path", path),
		slog.Int("size", len(content)),
	)

	return s.PublicURL(bucketName, path), nil
}

// PublicURL joins the base URL, bucket and escaped object path.
func (s *blobStorage) PublicURL(bucketName, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return s.publicBaseURL + "/" + bucketName + "/" + strings.Join(segments, "/")
}

// Close closes every opened bucket.
func (s *blobStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, b := range s.buckets {
		if err := b.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "close bucket %s", name))
		}
		delete(s.buckets, name)
	}

	return errors.Join(errs...)
}
