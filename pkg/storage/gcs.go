package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore reads objects from a Google Cloud Storage bucket using
// application default credentials.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, cfg Config) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.EndpointURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.EndpointURL), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client, %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *GCSStore) Name() string { return "Google Cloud Storage" }

func (s *GCSStore) URI(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}

func (s *GCSStore) ping(ctx context.Context, prefix string) error {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	_, err := it.Next()
	if errors.Is(err, iterator.Done) {
		if prefix == "" {
			return nil
		}
		return fmt.Errorf("failed to list %s, %w", s.URI(prefix), ErrFolderNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to list %s, %w", s.URI(prefix), err)
	}
	return nil
}

func (s *GCSStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s, %w", s.URI(key), err)
}

func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, %w", s.URI(key), err)
	}
	return r, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
