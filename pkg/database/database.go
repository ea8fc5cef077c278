package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BartekS5/fdload/pkg/fdload"
)

const pingTimeout = 5 * time.Second

// Supported drivers.
const (
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "postgres"
	DriverMongo     = "mongodb"
)

// Config holds the connection settings of the destination database.
type Config struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Handle is the database write handle shared by every file of a run.
// Exactly one of SQL and Mongo is set.
type Handle struct {
	Driver   string
	Database string
	SQL      *sql.DB
	Mongo    *mongo.Client
}

// DisplayName is the product name used in status lines.
func (h *Handle) DisplayName() string {
	switch h.Driver {
	case DriverMySQL:
		return "MySQL"
	case DriverSQLServer:
		return "SQL Server"
	case DriverPostgres:
		return "PostgreSQL"
	case DriverMongo:
		return "MongoDB"
	}
	return h.Driver
}

func (h *Handle) Close(ctx context.Context) error {
	if h.SQL != nil {
		return h.SQL.Close()
	}
	if h.Mongo != nil {
		return h.Mongo.Disconnect(ctx)
	}
	return nil
}

// Connect opens and pings the configured database. Every failure, including
// missing credentials, wraps fdload.ErrDatabaseConnection.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	if cfg.Host == "" || cfg.Name == "" {
		return nil, fmt.Errorf("%w: DB_HOST and DB_NAME must be set", fdload.ErrDatabaseConnection)
	}

	h := &Handle{Driver: cfg.Driver, Database: cfg.Name}

	if cfg.Driver == DriverMongo {
		client, err := ConnectMongo(ctx, MongoURI(cfg))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", fdload.ErrDatabaseConnection, err)
		}
		h.Mongo = client
		return h, nil
	}

	driverName, dsn, err := DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fdload.ErrDatabaseConnection, err)
	}
	db, err := ConnectSQL(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fdload.ErrDatabaseConnection, err)
	}
	h.SQL = db
	return h, nil
}

// DSN returns the database/sql driver name and data source name for cfg.
func DSN(cfg Config) (string, string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = hostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return "mysql", mc.FormatDSN(), nil
	case DriverSQLServer:
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     hostPort(cfg.Host, cfg.Port),
			RawQuery: url.Values{"database": {cfg.Name}}.Encode(),
		}
		return "sqlserver", u.String(), nil
	case DriverPostgres:
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   hostPort(cfg.Host, cfg.Port),
			Path:   "/" + cfg.Name,
		}
		return "pgx", u.String(), nil
	}
	return "", "", fmt.Errorf("driver %q has no SQL data source", cfg.Driver)
}

// MongoURI builds a mongodb:// URI; the database name is used for
// collection lookup, not for authentication.
func MongoURI(cfg Config) string {
	u := &url.URL{
		Scheme: "mongodb",
		Host:   hostPort(cfg.Host, cfg.Port),
		Path:   "/",
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

// hostPort appends port unless host already carries one.
func hostPort(host, port string) string {
	if port == "" {
		return host
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, port)
}

func ConnectSQL(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening SQL database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to SQL database (ping failed): %w", err)
	}
	return db, nil
}

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error creating MongoDB client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), pingTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, fmt.Errorf("error connecting to MongoDB (ping failed): %w", err)
	}
	return client, nil
}
