// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/config"
	"github.com/centralbureau/tabulator/internal/logging"
)

// DB wraps the DuckDB connection backing every repository in this
// package, plus the write mutex described in the package doc.
type DB struct {
	conn *sql.DB

	// writeMu serializes the read-compute-persist-audit cycle across
	// every repository sharing this DB, standing in for the pessimistic
	// write lock DuckDB does not offer (see package doc).
	writeMu sync.Mutex

	Audit *audit.DuckDBStore
}

// New opens (creating if absent) the single-file DuckDB database at
// cfg.Path, applies the schema, and returns a ready DB.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&max_memory=2GB&preserve_insertion_order=true&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single embedded-file DuckDB has no benefit from a connection
	// pool and every added connection is another goroutine contending
	// for the same file lock; pin it to one.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, Audit: audit.NewDuckDBStore(conn)}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.migrate(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Conn returns the underlying SQL handle, for packages (such as audit)
// that manage their own tables against the shared connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close flushes and closes the database.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("checkpoint before close failed")
	}
	return db.conn.Close()
}

// Ping checks that the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// WithTx runs fn inside a single transaction, serialized against every
// other WithTx call on this DB (see package doc). fn should perform the
// full read-compute-persist-audit cycle for one operation; WithTx
// commits if fn returns nil and rolls back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("transaction rollback failed")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isConflict reports whether err is a DuckDB transaction-conflict
// error, the case in which a caller may retry the whole operation.
func isConflict(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Transaction conflict") ||
		strings.Contains(s, "Conflict on update") ||
		strings.Contains(s, "cannot update a table that has been altered")
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
