package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MappingConfig is the ordered list of source objects to load.
// Entries are processed in slice order.
type MappingConfig struct {
	Version string         `json:"version" yaml:"version"`
	Entries []MappingEntry `json:"entries" yaml:"entries"`
}

// MappingEntry pairs a source object name with its destination table.
type MappingEntry struct {
	Source string `json:"source" yaml:"source"`
	Table  string `json:"table" yaml:"table"`
}

// DefaultMapping returns the built-in food delivery mapping. Parents come
// before the files that reference them (orders after customers, drivers and
// restaurants; order items last).
func DefaultMapping() *MappingConfig {
	return &MappingConfig{
		Version: "1",
		Entries: []MappingEntry{
			{Source: "customers.csv", Table: "customer"},
			{Source: "drivers.csv", Table: "driver"},
			{Source: "restaurants.csv", Table: "restaurant"},
			{Source: "orders.csv", Table: "orders"},
			{Source: "order_items.csv", Table: "order_item"},
		},
	}
}

// Validate checks that the mapping has at least one entry, that every entry
// names both sides and that no source object is mapped twice.
func (m *MappingConfig) Validate() error {
	if len(m.Entries) == 0 {
		return fmt.Errorf("mapping has no entries")
	}

	seen := make(map[string]struct{}, len(m.Entries))
	for i, e := range m.Entries {
		if e.Source == "" {
			return fmt.Errorf("entry %d: missing source", i)
		}
		if e.Table == "" {
			return fmt.Errorf("entry %d (%s): missing table", i, e.Source)
		}
		if _, dup := seen[e.Source]; dup {
			return fmt.Errorf("entry %d: source %s is mapped more than once", i, e.Source)
		}
		seen[e.Source] = struct{}{}
	}
	return nil
}

// LoadMapping parses a mapping document. YAML is a superset of JSON, but
// JSON input goes through encoding/json so its error messages stay familiar.
func LoadMapping(data []byte, format string) (*MappingConfig, error) {
	var m MappingConfig
	switch format {
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", format)
	}
	return &m, nil
}
