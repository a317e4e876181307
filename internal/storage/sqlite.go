// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coverwise/claimlens/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		blocks INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS clauses (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_clauses_position ON clauses(position);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateSource inserts a source record.
func (s *SQLiteStorage) CreateSource(ctx context.Context, src *models.Source) error {
	src.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sources (id, path, blocks, created_at) VALUES (?, ?, ?, ?)`,
		src.ID, src.Path, src.Blocks, src.CreatedAt,
	)
	return err
}

// ListSources returns all sources in insertion order.
func (s *SQLiteStorage) ListSources(ctx context.Context) ([]*models.Source, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, blocks, created_at FROM sources ORDER BY created_at, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*models.Source
	for rows.Next() {
		var src models.Source
		if err := rows.Scan(&src.ID, &src.Path, &src.Blocks, &src.CreatedAt); err != nil {
			return nil, err
		}
		sources = append(sources, &src)
	}
	return sources, rows.Err()
}

// CountSources returns the number of source records.
func (s *SQLiteStorage) CountSources(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sources`).Scan(&count)
	return count, err
}

// BatchCreateClauses inserts clauses in a single transaction.
func (s *SQLiteStorage) BatchCreateClauses(ctx context.Context, clauses []*models.Clause) error {
	if len(clauses) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO clauses (id, content, position, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, c := range clauses {
		c.CreatedAt = now
		if _, err := stmt.ExecContext(ctx, c.ID, c.Content, c.Position, c.CreatedAt); err != nil {
			return fmt.Errorf("insert clause %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// GetClause returns a clause by ID.
func (s *SQLiteStorage) GetClause(ctx context.Context, id string) (*models.Clause, error) {
	var c models.Clause
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content, position, created_at FROM clauses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Content, &c.Position, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("clause not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClauses returns all clauses ordered by position.
func (s *SQLiteStorage) ListClauses(ctx context.Context) ([]*models.Clause, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, position, created_at FROM clauses ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []*models.Clause
	for rows.Next() {
		var c models.Clause
		if err := rows.Scan(&c.ID, &c.Content, &c.Position, &c.CreatedAt); err != nil {
			return nil, err
		}
		clauses = append(clauses, &c)
	}
	return clauses, rows.Err()
}

// CountClauses returns the number of stored clauses.
func (s *SQLiteStorage) CountClauses(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clauses`).Scan(&count)
	return count, err
}

// Reset deletes all clauses and sources.
func (s *SQLiteStorage) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clauses`); err != nil {
		return fmt.Errorf("delete clauses: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sources`); err != nil {
		return fmt.Errorf("delete sources: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
