package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/BartekS5/fdload/internal/config"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect struct {
	Name string
	// QuoteIdent quotes a single identifier part.
	QuoteIdent func(string) string
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
	// MaxParams is the bind-parameter limit of one statement.
	MaxParams int
	// MaxRows caps the rows of one VALUES list; 0 means no cap.
	MaxRows int
}

var (
	MySQLDialect = Dialect{
		Name:        config.DriverMySQL,
		QuoteIdent:  func(s string) string { return "`" + strings.ReplaceAll(s, "`", "``") + "`" },
		Placeholder: func(int) string { return "?" },
		MaxParams:   65535,
	}
	PostgresDialect = Dialect{
		Name:        config.DriverPostgres,
		QuoteIdent:  func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` },
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		MaxParams:   65535,
	}
	SQLServerDialect = Dialect{
		Name:        config.DriverSQLServer,
		QuoteIdent:  func(s string) string { return "[" + strings.ReplaceAll(s, "]", "]]") + "]" },
		Placeholder: func(n int) string { return "@p" + strconv.Itoa(n) },
		MaxParams:   2100 - 1,
		MaxRows:     1000,
	}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return MySQLDialect, nil
	case config.DriverPostgres:
		return PostgresDialect, nil
	case config.DriverSQLServer:
		return SQLServerDialect, nil
	}
	return Dialect{}, fmt.Errorf("no SQL dialect for driver %q", driver)
}

// QuoteTable quotes a possibly schema-qualified table name.
func (d Dialect) QuoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdent(p)
	}
	return strings.Join(parts, ".")
}

// RowsPerStatement is how many rows of width columns fit in one INSERT.
func (d Dialect) RowsPerStatement(columns int) int {
	if columns <= 0 {
		return 0
	}
	n := d.MaxParams / columns
	if d.MaxRows > 0 && n > d.MaxRows {
		n = d.MaxRows
	}
	return n
}

// InsertStatement builds a multi-row INSERT for rows rows of columns.
func (d Dialect) InsertStatement(table string, columns []string, rows int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdent(c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", d.QuoteTable(table), strings.Join(quoted, ", "))

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(n))
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// SQLAppender appends rows with multi-row INSERT statements.
//
// Each Append call runs in its own transaction: a batch lands completely or
// not at all, while batches committed earlier stay in the table if a later
// batch of the same file fails.
type SQLAppender struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLAppender(db *sql.DB, driver string) (*SQLAppender, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &SQLAppender{DB: db, Dialect: d}, nil
}

func (l *SQLAppender) Append(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	if len(columns) == 0 {
		return fmt.Errorf("append to %s: no columns", table)
	}

	per := l.Dialect.RowsPerStatement(len(columns))
	if per == 0 {
		return fmt.Errorf("append to %s: %d columns exceed the %s parameter limit", table, len(columns), l.Dialect.Name)
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for start := 0; start < len(rows); start += per {
		end := min(start+per, len(rows))
		chunk := rows[start:end]

		args := make([]interface{}, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			args = append(args, row...)
		}

		query := l.Dialect.InsertStatement(table, columns, len(chunk))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
