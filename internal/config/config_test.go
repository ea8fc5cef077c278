package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"STORAGE_PROVIDER", "STORAGE_ROOT", "AWS_REGION", "AWS_ENDPOINT_URL", "S3_ACCESS_KEY", "S3_SECRET_KEY", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "loader")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "food_delivery")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "loader", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "food_delivery", cfg.Database.Name)
	assert.Equal(t, ProviderS3, cfg.Storage.Provider)
	assert.Equal(t, "food-delivery-bucket-20250730", cfg.Storage.Bucket)
	assert.Equal(t, "food_delivery_dataset", cfg.Storage.Folder)
	assert.Equal(t, 10000, cfg.BatchSize)
}

func TestLoadConfig_MissingDatabaseEnvIsNotAConfigError(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Host)
}

func TestLoadConfig_DriverAndProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLServer")
	t.Setenv("STORAGE_PROVIDER", "local")
	t.Setenv("STORAGE_ROOT", "/data")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLServer, cfg.Database.Driver)
	assert.Equal(t, ProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, "/data", cfg.Storage.Root)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"provider", map[string]string{"STORAGE_PROVIDER": "azure"}, "STORAGE_PROVIDER"},
		{"local without root", map[string]string{"STORAGE_PROVIDER": "local"}, "STORAGE_ROOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errors.Is(err, fdload.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_BatchSize(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.BatchSize = 0
	assert.ErrorIs(t, cfg.Validate(), fdload.ErrInvalidConfig)
}

func TestLoadMapping_Default(t *testing.T) {
	m, err := LoadMapping("")
	require.NoError(t, err)
	require.Len(t, m.Entries, 5)
	assert.Equal(t, "customers.csv", m.Entries[0].Source)
}

func TestLoadMapping_Files(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"entries":[{"source":"drivers.csv","table":"driver"}]}`), 0644))
	m, err := LoadMapping(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "driver", m.Entries[0].Table)

	yamlPath := filepath.Join(dir, "mapping.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("entries:\n  - source: orders.csv\n    table: orders\n"), 0644))
	m, err = LoadMapping(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "orders.csv", m.Entries[0].Source)
}

func TestLoadMapping_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMapping(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, fdload.ErrInvalidConfig)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"entries":`), 0644))
	_, err = LoadMapping(bad)
	assert.ErrorIs(t, err, fdload.ErrInvalidConfig)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("entries:\n  - {source: a.csv, table: a}\n  - {source: a.csv, table: b}\n"), 0644))
	_, err = LoadMapping(dup)
	assert.ErrorIs(t, err, fdload.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "more than once")
}
