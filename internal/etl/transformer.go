package etl

import (
	"fmt"

	"github.com/BartekS5/fdload/pkg/models"
	"github.com/BartekS5/fdload/pkg/utils"
)

// Transformer turns raw CSV cells into typed driver values using the
// destination table's schema. Column order and count are left untouched.
type Transformer struct {
	Schema *models.TableSchema
}

func NewTransformer(schema *models.TableSchema) *Transformer {
	return &Transformer{Schema: schema}
}

func (t *Transformer) TransformBatch(batch *Batch) ([][]interface{}, error) {
	types := make([]models.ColumnType, len(batch.Columns))
	for i, col := range batch.Columns {
		types[i] = t.Schema.TypeOf(col)
	}

	rows := make([][]interface{}, len(batch.Rows))
	for r, record := range batch.Rows {
		row := make([]interface{}, len(record))
		for c, cell := range record {
			v, err := utils.ConvertCell(cell, types[c])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", batch.FirstRow+int64(r), batch.Columns[c], err)
			}
			row[c] = v
		}
		rows[r] = row
	}
	return rows, nil
}
