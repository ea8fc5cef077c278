package models

// ColumnType is the semantic type a CSV cell is converted to before it is
// handed to the database driver.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeDecimal   ColumnType = "decimal"
	TypeText      ColumnType = "text"
	TypeTimestamp ColumnType = "timestamp"
	TypeBoolean   ColumnType = "boolean"
)

type Column struct {
	Name string
	Type ColumnType
}

// TableSchema describes the expected columns of a destination table.
// It only drives type conversion: the CSV header still decides which
// columns are written and in which order.
type TableSchema struct {
	Table   string
	Columns []Column
}

// TypeOf returns the declared type of a column, or TypeText for columns the
// schema does not know about.
func (s *TableSchema) TypeOf(column string) ColumnType {
	if s == nil {
		return TypeText
	}
	for _, c := range s.Columns {
		if c.Name == column {
			return c.Type
		}
	}
	return TypeText
}

// SchemaRegistry maps destination table names to their schema.
type SchemaRegistry map[string]*TableSchema

// Lookup returns the schema for table, or nil when none is registered.
func (r SchemaRegistry) Lookup(table string) *TableSchema {
	if r == nil {
		return nil
	}
	return r[table]
}

// DefaultSchemas returns the schemas of the five food delivery tables,
// matching the headers of the dataset's CSV files.
func DefaultSchemas() SchemaRegistry {
	schemas := []*TableSchema{
		{
			Table: "customer",
			Columns: []Column{
				{Name: "customer_id", Type: TypeInteger},
				{Name: "name", Type: TypeText},
				{Name: "email", Type: TypeText},
				{Name: "phone", Type: TypeText},
				{Name: "address", Type: TypeText},
				{Name: "city", Type: TypeText},
				{Name: "signup_date", Type: TypeTimestamp},
			},
		},
		{
			Table: "driver",
			Columns: []Column{
				{Name: "driver_id", Type: TypeInteger},
				{Name: "name", Type: TypeText},
				{Name: "phone", Type: TypeText},
				{Name: "vehicle_type", Type: TypeText},
				{Name: "rating", Type: TypeDecimal},
				{Name: "is_active", Type: TypeBoolean},
				{Name: "joined_at", Type: TypeTimestamp},
			},
		},
		{
			Table: "restaurant",
			Columns: []Column{
				{Name: "restaurant_id", Type: TypeInteger},
				{Name: "name", Type: TypeText},
				{Name: "cuisine", Type: TypeText},
				{Name: "address", Type: TypeText},
				{Name: "city", Type: TypeText},
				{Name: "rating", Type: TypeDecimal},
				{Name: "is_open", Type: TypeBoolean},
			},
		},
		{
			Table: "orders",
			Columns: []Column{
				{Name: "order_id", Type: TypeInteger},
				{Name: "customer_id", Type: TypeInteger},
				{Name: "restaurant_id", Type: TypeInteger},
				{Name: "driver_id", Type: TypeInteger},
				{Name: "order_time", Type: TypeTimestamp},
				{Name: "delivery_time", Type: TypeTimestamp},
				{Name: "status", Type: TypeText},
				{Name: "total_amount", Type: TypeDecimal},
			},
		},
		{
			Table: "order_item",
			Columns: []Column{
				{Name: "order_item_id", Type: TypeInteger},
				{Name: "order_id", Type: TypeInteger},
				{Name: "item_name", Type: TypeText},
				{Name: "quantity", Type: TypeInteger},
				{Name: "unit_price", Type: TypeDecimal},
			},
		},
	}

	reg := make(SchemaRegistry, len(schemas))
	for _, s := range schemas {
		reg[s.Table] = s
	}
	return reg
}
