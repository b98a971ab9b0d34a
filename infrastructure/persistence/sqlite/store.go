// Package sqlite persists the catalog overlay as a single-row JSON blob in a
// SQLite database. The slot is still read and replaced wholesale; SQLite only
// supplies the transactional replace and a durable single-file format.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const overlaySlot = "catalog"

// Store is a SQLite-backed overlay slot.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at the given path and prepares the
// overlay table.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create overlay directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS overlay (
		slot TEXT PRIMARY KEY,
		document BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create overlay table: %w", err)
	}
	return &Store{db: db}, nil
}

// Read returns the overlay document, reporting absence when the slot row does
// not exist yet.
func (s *Store) Read(ctx context.Context) ([]byte, bool, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM overlay WHERE slot = ?`, overlaySlot).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("read overlay: %w", err)
	}
	return doc, true, nil
}

// WriteAll replaces the overlay document wholesale in a single transaction.
func (s *Store) WriteAll(ctx context.Context, doc []byte) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin overlay write: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO overlay (slot, document) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET document = excluded.document`, overlaySlot, doc); err != nil {
		return fmt.Errorf("replace overlay: %w", err)
	}
	return tx.Commit()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
