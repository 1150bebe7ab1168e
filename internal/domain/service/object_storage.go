package service

import "context"

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	// Upload writes content to bucket/path and returns the public URL of the object.
	Upload(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error)

	// PublicURL returns the URL an uploaded object is served from.
	PublicURL(bucket, path string) string

	// Close releases every opened bucket.
	Close() error
}
