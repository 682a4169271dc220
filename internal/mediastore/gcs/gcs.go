package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore"
)

// Storage implements mediastore.Storage backed by Google Cloud Storage.
// Objects are publicly readable through the standard storage host; the bucket
// policy is expected to allow it.
type Storage struct {
	client *storage.Client
	bucket string
}

// New creates a GCS-backed storage for the given bucket.
func New(client *storage.Client, bucket string) (*Storage, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket is empty")
	}
	return &Storage{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload writes the file to the bucket under the given key.
func (s *Storage) Upload(ctx context.Context, input *mediastore.UploadInput) (*mediastore.UploadResult, error) {
	w := s.client.Bucket(s.bucket).Object(input.Key).NewWriter(ctx)
	w.ContentType = input.ContentType

	if _, err := io.Copy(w, input.Data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gcs upload %s: %w", input.Key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gcs upload %s: %w", input.Key, err)
	}

	return &mediastore.UploadResult{
		Key: input.Key,
		URL: s.publicURL(input.Key),
	}, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

// GetURL returns the public URL for the key after verifying the object exists.
func (s *Storage) GetURL(ctx context.Context, key string) (string, error) {
	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", fmt.Errorf("gcs: object not found: %s", key)
		}
		return "", fmt.Errorf("gcs attrs %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *Storage) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
