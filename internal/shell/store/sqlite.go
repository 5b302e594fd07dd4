package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/artpar/meow/internal/core/deploy"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite, so pending sessions survive a
// gateway restart.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Mapping
// =============================================================================

// sessionRow represents a session row in the database.
// created_at is stored as unix nanoseconds so range deletes compare correctly.
type sessionRow struct {
	ID        string `db:"id"`
	Prompt    string `db:"prompt"`
	Config    string `db:"config"`
	CreatedAt int64  `db:"created_at"`
}

func toRow(session *Session) (*sessionRow, error) {
	config, err := json.Marshal(session.Config)
	if err != nil {
		return nil, NewStoreError("toRow", session.ID, "failed to marshal config", ErrInvalidData)
	}

	return &sessionRow{
		ID:        session.ID,
		Prompt:    session.Prompt,
		Config:    string(config),
		CreatedAt: session.CreatedAt.UnixNano(),
	}, nil
}

func fromRow(row *sessionRow) (*Session, error) {
	var config deploy.Document
	if err := json.Unmarshal([]byte(row.Config), &config); err != nil {
		return nil, NewStoreError("fromRow", row.ID, "failed to unmarshal config", ErrInvalidData)
	}

	return &Session{
		ID:        row.ID,
		Prompt:    row.Prompt,
		Config:    config,
		CreatedAt: time.Unix(0, row.CreatedAt).UTC(),
	}, nil
}

// =============================================================================
// Store Operations
// =============================================================================

// Create stores a new session.
func (s *SQLiteStore) Create(ctx context.Context, session *Session) error {
	row, err := toRow(session)
	if err != nil {
		return err
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO sessions (id, prompt, config, created_at)
		VALUES (:id, :prompt, :config, :created_at)`, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return NewStoreError("Create", session.ID, "already exists", ErrDuplicateID)
		}
		return NewStoreError("Create", session.ID, err.Error(), err)
	}

	return nil
}

// Take atomically looks up and deletes a session inside a transaction.
func (s *SQLiteStore) Take(ctx context.Context, id string) (*Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, NewStoreError("Take", id, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	var row sessionRow
	err = tx.GetContext(ctx, &row, `SELECT id, prompt, config, created_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewStoreError("Take", id, "not found", ErrNotFound)
	}
	if err != nil {
		return nil, NewStoreError("Take", id, err.Error(), err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return nil, NewStoreError("Take", id, err.Error(), err)
	}

	if err := tx.Commit(); err != nil {
		return nil, NewStoreError("Take", id, "failed to commit", err)
	}

	return fromRow(&row)
}

// Get reads a session without consuming it.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, `SELECT id, prompt, config, created_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewStoreError("Get", id, "not found", ErrNotFound)
	}
	if err != nil {
		return nil, NewStoreError("Get", id, err.Error(), err)
	}

	return fromRow(&row)
}

// DeleteExpired removes sessions created strictly before the given time.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE created_at < ?`,
		before.UnixNano())
	if err != nil {
		return 0, NewStoreError("DeleteExpired", "", err.Error(), err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, NewStoreError("DeleteExpired", "", err.Error(), err)
	}
	return int(removed), nil
}

// Len returns the number of live sessions.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, NewStoreError("Len", "", err.Error(), err)
	}
	return count, nil
}
