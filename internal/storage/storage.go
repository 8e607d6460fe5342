// Package storage provides the SQLite-backed price store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/yasai-watch/radar/internal/models"
	"github.com/yasai-watch/radar/internal/storage/migrations"
)

// Store defines the write side of the price store.
// Reads are served by the API process through its own repository.
type Store interface {
	// AppendRecords appends the records whose date is not yet stored and
	// returns how many rows were written. Zero is a valid outcome.
	AppendRecords(ctx context.Context, records []models.PriceRecord) (int, error)

	// Close releases the database handle.
	Close() error
}

// Open opens the SQLite database at path and applies pending migrations,
// creating the store on first use.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	// The collector and the API share this file from separate processes;
	// WAL plus a busy timeout keeps a write during an API read from
	// surfacing as SQLITE_BUSY.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// sqliteStore implements Store over a database/sql handle.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle in a Store.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

// AppendRecords deduplicates at date granularity: a date already present
// blocks every record of that date, including items it does not have yet.
// Duplicate items within a kept date are all written.
func (s *sqliteStore) AppendRecords(ctx context.Context, records []models.PriceRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	existing, err := s.existingDates(ctx)
	if err != nil {
		return 0, err
	}

	var fresh []models.PriceRecord
	for _, rec := range records {
		if !existing[rec.Date] {
			fresh = append(fresh, rec)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prices (date, item, price) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range fresh {
		if _, err := stmt.ExecContext(ctx, rec.Date, rec.Item, rec.Price); err != nil {
			return 0, fmt.Errorf("insert price row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func (s *sqliteStore) existingDates(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT date FROM prices`)
	if err != nil {
		return nil, fmt.Errorf("query existing dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates[date] = true
	}
	return dates, rows.Err()
}

// Close closes the underlying database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
