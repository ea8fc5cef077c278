// Package storage gives the loader a read-only view of the bucket holding
// the source CSV files. Providers: Amazon S3, Google Cloud Storage and a
// local directory tree.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/BartekS5/fdload/pkg/fdload"
)

// Supported providers.
const (
	ProviderS3    = "s3"
	ProviderGCS   = "gcs"
	ProviderLocal = "local"
)

// Config selects the provider and the location of the source objects.
type Config struct {
	Provider string
	Bucket   string
	Folder   string
	// Root is the directory standing in for the bucket with the local provider.
	Root string
	// Region only applies to S3. EndpointURL points S3 (path-style) or GCS
	// at an emulator such as MinIO or fake-gcs-server.
	Region      string
	EndpointURL string
	// AccessKey and SecretKey authenticate against a custom S3 endpoint.
	AccessKey string
	SecretKey string
}

// ErrFolderNotFound is wrapped into the Connect error when the configured
// folder holds no objects.
var ErrFolderNotFound = errors.New("folder not found")

// Store is the storage handle used by the pipeline. Keys are relative to
// the bucket, e.g. "food_delivery_dataset/customers.csv".
type Store interface {
	// Name is the human readable provider name used in status lines.
	Name() string
	// Exists reports whether key is present. A missing object is not an error.
	Exists(ctx context.Context, key string) (bool, error)
	// Open streams the object body from the start.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// URI renders key as a fully qualified location for diagnostics.
	URI(key string) string
	Close() error
}

// Connect builds the provider client from ambient credentials and lists the
// configured folder once so an unreachable endpoint or bad credentials fail
// here, before any file is touched. Errors wrap fdload.ErrStorageConnection.
func Connect(ctx context.Context, cfg Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Provider {
	case ProviderS3:
		store, err = NewS3Store(ctx, cfg)
	case ProviderGCS:
		store, err = NewGCSStore(ctx, cfg)
	case ProviderLocal:
		store, err = NewLocalStore(cfg)
	default:
		err = fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fdload.ErrStorageConnection, err)
	}

	if err := ping(ctx, store, cfg.Folder); err != nil {
		store.Close()
		return nil, fmt.Errorf("%w: %w", fdload.ErrStorageConnection, err)
	}
	return store, nil
}

type pinger interface {
	ping(ctx context.Context, prefix string) error
}

func ping(ctx context.Context, store Store, folder string) error {
	p, ok := store.(pinger)
	if !ok {
		return nil
	}
	return p.ping(ctx, Prefix(folder))
}

// Key joins the folder and the object name into a bucket-relative key.
func Key(folder, name string) string {
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// Prefix returns the listing prefix for folder, with a trailing slash.
func Prefix(folder string) string {
	if folder == "" {
		return ""
	}
	return path.Clean(folder) + "/"
}
