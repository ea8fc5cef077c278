package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BartekS5/fdload/pkg/models"
)

// ConvertCell converts a raw CSV cell to the Go value the database driver
// receives for a column of type t. Empty cells become nil (NULL).
func ConvertCell(raw string, t models.ColumnType) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	switch t {
	case models.TypeInteger:
		return ConvertToInt(raw)
	case models.TypeDecimal:
		return ConvertToFloat(raw)
	case models.TypeTimestamp:
		return ConvertDateTime(raw)
	case models.TypeBoolean:
		return ConvertToBool(raw)
	default:
		return raw, nil
	}
}

var dateTimeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ConvertDateTime parses the timestamp layouts found in exported CSV files.
func ConvertDateTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, f := range dateTimeFormats {
		if t, err := time.Parse(f, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", v)
}

// ConvertToInt accepts plain integers and integral floats such as "42.0",
// which spreadsheet exports produce for numeric ID columns.
func ConvertToInt(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("cannot convert %q to integer", v)
	}
	return int64(f), nil
}

func ConvertToFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to decimal", v)
	}
	return f, nil
}

func ConvertToBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes":
		return true, nil
	case "0", "f", "false", "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("cannot convert %q to boolean", v)
}
