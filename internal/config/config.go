// Package config loads the loader's settings from the environment
// (populated from a .env file in main.go) and the optional mapping file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BartekS5/fdload/pkg/database"
	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/BartekS5/fdload/pkg/storage"
)

// Supported DB_DRIVER values.
const (
	DriverMySQL     = database.DriverMySQL
	DriverSQLServer = database.DriverSQLServer
	DriverPostgres  = database.DriverPostgres
	DriverMongo     = database.DriverMongo
)

// Supported STORAGE_PROVIDER values.
const (
	ProviderS3    = storage.ProviderS3
	ProviderGCS   = storage.ProviderGCS
	ProviderLocal = storage.ProviderLocal
)

// Config holds everything a run needs. It is built once at startup and
// passed down explicitly; nothing below the CLI reads the environment.
type Config struct {
	Database  database.Config
	Storage   storage.Config
	BatchSize int
	DryRun    bool
	LogLevel  string
}

// LoadConfig loads application settings from environment variables.
// Missing database credentials are not an error here: they surface as a
// database connection failure so the exit code matches an unreachable host.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Database: database.Config{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
		},
		Storage: storage.Config{
			Provider:    strings.ToLower(getEnv("STORAGE_PROVIDER", ProviderS3)),
			Bucket:      fdload.DefaultBucket,
			Folder:      fdload.DefaultFolder,
			Root:        os.Getenv("STORAGE_ROOT"),
			Region:      os.Getenv("AWS_REGION"),
			EndpointURL: os.Getenv("AWS_ENDPOINT_URL"),
			AccessKey:   os.Getenv("S3_ACCESS_KEY"),
			SecretKey:   os.Getenv("S3_SECRET_KEY"),
		},
		BatchSize: fdload.DefaultBatchSize,
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be fixed by retrying a connection.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLServer, DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("%w: unsupported DB_DRIVER %q", fdload.ErrInvalidConfig, c.Database.Driver)
	}

	switch c.Storage.Provider {
	case ProviderS3, ProviderGCS:
	case ProviderLocal:
		if c.Storage.Root == "" {
			return fmt.Errorf("%w: STORAGE_ROOT is required for the local storage provider", fdload.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported STORAGE_PROVIDER %q", fdload.ErrInvalidConfig, c.Storage.Provider)
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("%w: bucket must not be empty", fdload.ErrInvalidConfig)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", fdload.ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
