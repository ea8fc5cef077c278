package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Batch is a bounded run of CSV records in file order. Rows always have
// len(Columns) cells.
type Batch struct {
	Columns []string
	Rows    [][]string
	SeqNum  int
	// FirstRow is the 1-based data row number of Rows[0] (the header is row 0).
	FirstRow int64
}

// ErrNoColumns is returned for a stream without a header line.
var ErrNoColumns = errors.New("no columns to parse from file")

// BatchReader splits a CSV stream into batches of at most size rows. The
// first record is the header. It cannot seek: restarting means re-opening
// the object.
type BatchReader struct {
	reader  *csv.Reader
	columns []string
	size    int
	seqNum  int
	rowNum  int64
	done    bool
}

// NewBatchReader reads the header from r. An empty stream has no header and
// fails with ErrNoColumns.
func NewBatchReader(r io.Reader, size int) (*BatchReader, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	b := &BatchReader{reader: cr, size: size}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	b.columns = header
	return b, nil
}

func (b *BatchReader) Columns() []string { return b.columns }

// Next returns the next batch, or io.EOF once every row has been returned.
// Short rows are padded with empty cells; a row wider than the header is
// an error.
func (b *BatchReader) Next() (*Batch, error) {
	if b.done {
		return nil, io.EOF
	}

	batch := &Batch{
		Columns:  b.columns,
		Rows:     make([][]string, 0, min(b.size, 1024)),
		FirstRow: b.rowNum + 1,
	}

	for len(batch.Rows) < b.size {
		record, err := b.reader.Read()
		if errors.Is(err, io.EOF) {
			b.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", b.rowNum+1, err)
		}
		b.rowNum++

		if len(record) > len(b.columns) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", b.rowNum, len(b.columns), len(record))
		}
		for len(record) < len(b.columns) {
			record = append(record, "")
		}
		batch.Rows = append(batch.Rows, record)
	}

	if len(batch.Rows) == 0 {
		return nil, io.EOF
	}
	b.seqNum++
	batch.SeqNum = b.seqNum
	return batch, nil
}
