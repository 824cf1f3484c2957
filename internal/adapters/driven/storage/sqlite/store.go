package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the
// key-value and report history interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.motocheck/data/motocheck.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".motocheck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "motocheck.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// KeyValueStore returns a KeyValueStore interface backed by this store.
func (s *Store) KeyValueStore() driven.KeyValueStore {
	return &kvStore{store: s}
}

// ReportHistoryStore returns a ReportHistoryStore interface backed by this store.
func (s *Store) ReportHistoryStore() driven.ReportHistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Key-Value Store ====================

// kvStore implements driven.KeyValueStore.
type kvStore struct {
	store *Store
}

var _ driven.KeyValueStore = (*kvStore)(nil)

// Get retrieves a value by key.
func (s *kvStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT value FROM kv_entries WHERE key = ?", key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

// Set stores or replaces a value.
func (s *kvStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key.
func (s *kvStore) Remove(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("removing key %s: %w", key, err)
	}
	return nil
}

// ==================== Report History Store ====================

// historyStore implements driven.ReportHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.ReportHistoryStore = (*historyStore)(nil)

// Record appends a history entry.
func (s *historyStore) Record(ctx context.Context, rec domain.ReportRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO report_history (inspection_id, file_name, format, pages, size_bytes, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.InspectionID, rec.FileName, string(rec.Format), rec.Pages, rec.SizeBytes, rec.GeneratedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving report history: %w", err)
	}
	return nil
}

// List returns the most recent entries first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ReportRecord, error) {
	query := `
		SELECT inspection_id, file_name, format, pages, size_bytes, generated_at
		FROM report_history
		ORDER BY generated_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying report history: %w", err)
	}
	defer rows.Close()

	var records []domain.ReportRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.ReportRecord
		var format string
		var generatedAt sql.NullTime
		if err := rows.Scan(&rec.InspectionID, &rec.FileName, &format,
			&rec.Pages, &rec.SizeBytes, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning report history: %w", err)
		}
		rec.Format = domain.ReportFormat(format)
		if generatedAt.Valid {
			rec.GeneratedAt = generatedAt.Time
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report history: %w", err)
	}

	return records, nil
}
