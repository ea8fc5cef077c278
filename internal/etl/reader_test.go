package etl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *BatchReader) []*Batch {
	t.Helper()
	var batches []*Batch
	for {
		b, err := r.Next()
		if err == io.EOF {
			return batches
		}
		require.NoError(t, err)
		batches = append(batches, b)
	}
}

func TestBatchReader_Splits(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("order_item_id,order_id,quantity\n")
	for i := 1; i <= 7; i++ {
		sb.WriteString("1,2,3\n")
	}

	r, err := NewBatchReader(strings.NewReader(sb.String()), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_item_id", "order_id", "quantity"}, r.Columns())

	batches := readAll(t, r)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Rows, 3)
	assert.Len(t, batches[1].Rows, 3)
	assert.Len(t, batches[2].Rows, 1)
	assert.Equal(t, 3, batches[2].SeqNum)
	assert.Equal(t, int64(7), batches[2].FirstRow)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBatchReader_ExactMultiple(t *testing.T) {
	r, err := NewBatchReader(strings.NewReader("a\n1\n2\n3\n4\n"), 2)
	require.NoError(t, err)
	assert.Len(t, readAll(t, r), 2)
}

func TestBatchReader_HeaderOnly(t *testing.T) {
	r, err := NewBatchReader(strings.NewReader("driver_id,name\n"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"driver_id", "name"}, r.Columns())
	assert.Empty(t, readAll(t, r))
}

func TestBatchReader_EmptyStreamHasNoColumns(t *testing.T) {
	_, err := NewBatchReader(strings.NewReader(""), 10)
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestBatchReader_QuotedFieldsAndBOM(t *testing.T) {
	data := "\ufeffrestaurant_id,name,address\n1,\"Pizza, Pasta & Co\",\"12 Main St\nSuite 4\"\n"
	r, err := NewBatchReader(strings.NewReader(data), 10)
	require.NoError(t, err)
	assert.Equal(t, "restaurant_id", r.Columns()[0])

	batches := readAll(t, r)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"1", "Pizza, Pasta & Co", "12 Main St\nSuite 4"}, batches[0].Rows[0])
}

func TestBatchReader_ShortRowsArePadded(t *testing.T) {
	r, err := NewBatchReader(strings.NewReader("a,b,c\n1\n"), 10)
	require.NoError(t, err)

	batches := readAll(t, r)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"1", "", ""}, batches[0].Rows[0])
}

func TestBatchReader_WideRowFails(t *testing.T) {
	r, err := NewBatchReader(strings.NewReader("a,b\n1,2\n1,2,3\n"), 10)
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: expected 2 fields, saw 3")
}

func TestBatchReader_BadSize(t *testing.T) {
	_, err := NewBatchReader(strings.NewReader("a\n"), 0)
	assert.Error(t, err)
}
