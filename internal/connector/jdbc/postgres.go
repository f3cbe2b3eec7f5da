// Package jdbc implements the relational table sink.
//
// The destination is Postgres; two registered drivers are supported so the
// connection layer can be swapped without touching load logic:
//
//	postgres - lib/pq (default)
//	pgx      - jackc pgx stdlib
//
// The load is a full refresh: DROP, CREATE, batched multi-row INSERTs, all
// inside one transaction so readers never observe a half-written table.
package jdbc

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "github.com/lib/pq"              // PostgreSQL driver

	"github.com/p-knytl/jira2sql/internal/frame"
)

// PostgresSink writes snapshot frames to a Postgres table.
type PostgresSink struct {
	config *Config
	db     *sql.DB
}

// NewPostgresSink opens the destination connection.
func NewPostgresSink(config *Config) (*PostgresSink, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresSink{config: config, db: db}, nil
}

// Table returns the configured destination table name.
func (s *PostgresSink) Table() string {
	return s.config.Table
}

// Ping tests the destination connection.
func (s *PostgresSink) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close releases database resources. The pipeline calls this
// unconditionally after the load attempt, success or failure.
func (s *PostgresSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceTable replaces the destination table's full contents with the
// frame. From the caller's point of view it is a single logical operation:
// drop, create, and every insert batch run in one transaction.
func (s *PostgresSink) ReplaceTable(ctx context.Context, f *frame.Frame) error {
	start := time.Now()
	log.Printf("[jdbc] replacing table %q (%d rows, %d columns)", s.config.Table, f.NumRows(), f.NumColumns())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dropTableSQL(s.config.Table)); err != nil {
		return fmt.Errorf("drop %s: %w", s.config.Table, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(s.config.Table, f)); err != nil {
		return fmt.Errorf("create %s: %w", s.config.Table, err)
	}

	batch := s.config.BatchSize
	for offset := 0; offset < f.NumRows(); offset += batch {
		end := offset + batch
		if end > f.NumRows() {
			end = f.NumRows()
		}
		stmt := insertSQL(s.config.Table, f, end-offset)
		if _, err := tx.ExecContext(ctx, stmt, insertArgs(f, offset, end)...); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", offset, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("[jdbc] load complete in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
