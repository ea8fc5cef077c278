package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/BartekS5/fdload/pkg/models"
)

// LoadMapping reads and parses a mapping file. The format follows the file
// extension (.json, .yaml, .yml). An empty path yields the built-in mapping.
func LoadMapping(filePath string) (*models.MappingConfig, error) {
	if filePath == "" {
		return models.DefaultMapping(), nil
	}

	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read mapping file '%s': %v", fdload.ErrInvalidConfig, filePath, err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	mapping, err := models.LoadMapping(bytes, format)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapping file '%s': %v", fdload.ErrInvalidConfig, filePath, err)
	}

	if err := mapping.Validate(); err != nil {
		return nil, fmt.Errorf("%w: mapping file '%s': %v", fdload.ErrInvalidConfig, filePath, err)
	}
	return mapping, nil
}
