package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"homefinder/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQL drivers understood by NewSQLClient
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Schema is the documents table the SQL backend reads from.
// It is portable between PostgreSQL and SQLite.
//
//go:embed schema.sql
var Schema string

// SQLClient reads JSON documents out of a relational mirror of the content store
type SQLClient struct {
	db     *sqlx.DB
	driver string
}

// NewSQLClient opens a connection pool for driver ("postgres" or "sqlite")
func NewSQLClient(driver, dsn string, maxConn, maxIdleConn int) (*SQLClient, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	if driver == DriverPostgres {
		db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
		db.SetConnMaxIdleTime(2 * time.Minute)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLClient{db: db, driver: driver}, nil
}

// Driver returns the driver name the pool was opened with
func (c *SQLClient) Driver() string {
	return c.driver
}

// DB exposes the underlying pool
func (c *SQLClient) DB() *sqlx.DB {
	return c.db
}

// Close closes the database connection
func (c *SQLClient) Close() error {
	return c.db.Close()
}

// Fetch runs a query written with :name placeholders. Every row must yield
// a single JSON column holding the projected document.
func (c *SQLClient) Fetch(ctx context.Context, query string, params map[string]string) ([]model.Document, error) {
	args := make(map[string]interface{}, len(params))
	for name, value := range params {
		args[name] = value
	}

	rows, err := c.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, queryFailed("failed to run query: %v", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc); err != nil {
			return nil, queryFailed("failed to scan document: %v", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("failed to iterate documents: %v", err)
	}

	return docs, nil
}
