// Package sqlite is the single-file storage backend, used for local development and small clubs
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dcbc/crewboard/pkg/db"
)

//go:embed schema.sql
var schema string

// DB is the SQLite implementation of db.Database
type DB struct {
	sql *sql.DB
}

var _ db.Database = (*DB)(nil)

// Open opens (creating if needed) the database file at path and applies the schema
func Open(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// busy_timeout waits on locks, WAL with synchronous(NORMAL) for concurrent readers
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(path))

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{sql: conn}, nil
}

// Close closes the underlying database handle
func (d *DB) Close() {
	_ = d.sql.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows onto db.ErrNotFound
func notFound(err error, what, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", what, key, db.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %q: %w", what, key, err)
}

func deleted(res sql.Result, what, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", what, key, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", what, key, db.ErrNotFound)
	}
	return nil
}
