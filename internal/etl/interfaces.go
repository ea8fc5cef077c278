// Package etl moves CSV objects from the object store into destination
// tables, one file at a time, in fixed-size row batches.
package etl

import (
	"context"
	"io"
)

// ObjectStore is the read side of a run. storage.Store satisfies it.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	URI(key string) string
}

// Appender adds rows to a destination table. It never updates, replaces or
// truncates existing rows. Every row has one value per column, in column
// order.
type Appender interface {
	Append(ctx context.Context, table string, columns []string, rows [][]interface{}) error
}
