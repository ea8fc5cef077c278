package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_InsertStatement(t *testing.T) {
	cols := []string{"customer_id", "name"}

	assert.Equal(t,
		"INSERT INTO `customer` (`customer_id`, `name`) VALUES (?, ?), (?, ?)",
		MySQLDialect.InsertStatement("customer", cols, 2))
	assert.Equal(t,
		`INSERT INTO "public"."customer" ("customer_id", "name") VALUES ($1, $2), ($3, $4)`,
		PostgresDialect.InsertStatement("public.customer", cols, 2))
	assert.Equal(t,
		"INSERT INTO [dbo].[order_item] ([customer_id], [name]) VALUES (@p1, @p2)",
		SQLServerDialect.InsertStatement("dbo.order_item", cols, 1))
}

func TestDialect_QuoteEscapes(t *testing.T) {
	assert.Equal(t, "`we``ird`", MySQLDialect.QuoteIdent("we`ird"))
	assert.Equal(t, `"we""ird"`, PostgresDialect.QuoteIdent(`we"ird`))
	assert.Equal(t, "[we]]ird]", SQLServerDialect.QuoteIdent("we]ird"))
}

func TestDialect_RowsPerStatement(t *testing.T) {
	assert.Equal(t, 13107, MySQLDialect.RowsPerStatement(5))
	assert.Equal(t, 1000, SQLServerDialect.RowsPerStatement(2))
	assert.Equal(t, 262, SQLServerDialect.RowsPerStatement(8))
	assert.Equal(t, 0, MySQLDialect.RowsPerStatement(0))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name)

	_, err = DialectFor("mongodb")
	assert.Error(t, err)
}

func TestSQLAppender_SplitsStatementsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	d := MySQLDialect
	d.MaxParams = 4 // two rows of two columns per statement

	appender := &SQLAppender{DB: db, Dialect: d}
	rows := [][]interface{}{{int64(1), "Ann"}, {int64(2), "Bob"}, {int64(3), "Cid"}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `customer` (`customer_id`, `name`) VALUES (?, ?), (?, ?)").
		WithArgs(int64(1), "Ann", int64(2), "Bob").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `customer` (`customer_id`, `name`) VALUES (?, ?)").
		WithArgs(int64(3), "Cid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, appender.Append(context.Background(), "customer", []string{"customer_id", "name"}, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAppender_RollsBackFailedBatch(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	appender := &SQLAppender{DB: db, Dialect: MySQLDialect}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `driver` (`driver_id`) VALUES (?)").
		WithArgs(int64(1)).
		WillReturnError(errors.New("Error 1146: Table 'food.driver' doesn't exist"))
	mock.ExpectRollback()

	err = appender.Append(context.Background(), "driver", []string{"driver_id"}, [][]interface{}{{int64(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert into driver")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAppender_EmptyBatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	appender := &SQLAppender{DB: db, Dialect: PostgresDialect}
	require.NoError(t, appender.Append(context.Background(), "orders", []string{"order_id"}, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
