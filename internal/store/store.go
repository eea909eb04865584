// Package store persists theme preferences in SQLite, keyed by the
// anonymous session cookie.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/folio/internal/theme"
)

const timeLayout = "2006-01-02 15:04:05"

// DB is a preference store backed by SQLite.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open creates or opens the database file at path and migrates it.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newDB(sqlDB, logger)
}

// OpenMemory opens a private in-memory database.
func OpenMemory(logger *slog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	return newDB(sqlDB, logger)
}

func newDB(sqlDB *sql.DB, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &DB{db: sqlDB, logger: logger, now: time.Now}
	if err := d.migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

func (d *DB) Close() error { return d.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS theme_preferences (
	session_id TEXT PRIMARY KEY,
	preference TEXT NOT NULL CHECK(preference IN ('light','dark','system'))
)`

func (d *DB) migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating theme_preferences: %w", err)
	}

	// Older databases predate updated_at; add it when missing.
	var columnExists int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('theme_preferences') WHERE name = 'updated_at'`,
	).Scan(&columnExists)
	if err != nil {
		return fmt.Errorf("inspecting theme_preferences: %w", err)
	}
	if columnExists == 0 {
		if _, err := d.db.ExecContext(ctx,
			`ALTER TABLE theme_preferences ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,
		); err != nil {
			return fmt.Errorf("adding updated_at: %w", err)
		}
		d.logger.Info("migrated theme_preferences", "column", "updated_at")
	}

	_, err = d.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_theme_preferences_updated ON theme_preferences(updated_at)`)
	return err
}

// Preference implements theme.Store. A read counts as a visit and keeps
// the row from being pruned.
func (d *DB) Preference(ctx context.Context, session string) (theme.Preference, bool, error) {
	var raw string
	err := d.db.QueryRowContext(ctx, `
		UPDATE theme_preferences SET updated_at = ?
		WHERE session_id = ?
		RETURNING preference
	`, d.now().UTC().Format(timeLayout), session).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying preference: %w", err)
	}
	p, err := theme.ParsePreference(raw)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPreference implements theme.Store.
func (d *DB) SetPreference(ctx context.Context, session string, p theme.Preference) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (session_id, preference, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			preference = excluded.preference,
			updated_at = excluded.updated_at
	`, session, string(p), d.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upserting preference: %w", err)
	}
	return nil
}

// Prune deletes preferences not read or written within maxAge and returns how many
// rows were removed.
func (d *DB) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := d.now().Add(-maxAge).UTC().Format(timeLayout)
	result, err := d.db.ExecContext(ctx,
		`DELETE FROM theme_preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning preferences: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		d.logger.Info("pruned stale theme preferences", "rows", rows, "max_age", maxAge)
	}
	return rows, nil
}

// Count returns the number of stored preferences.
func (d *DB) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM theme_preferences`).Scan(&n)
	return n, err
}
