// Package sqlite provides a SQLite-backed sequence state store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/seqgen/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/seqgen/internal/sequence/storage"
	"github.com/louisbranch/seqgen/internal/sequence/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DefaultPath is the database location relative to the working directory.
const DefaultPath = "seqgen.db"

// stateRowID pins the single state row.
const stateRowID = 1

// Store persists sequence state in SQLite.
type Store struct {
	sqlDB *sql.DB
	path  string
	clock func() time.Time
}

// Open opens a SQLite state store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, path: cleanPath, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Location returns the database path.
func (s *Store) Location() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the state row. A missing row reports ok=false.
func (s *Store) Load(ctx context.Context) (uint32, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, false, fmt.Errorf("storage is not configured")
	}

	var seed int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT seed FROM sequence_state WHERE id = ?`, stateRowID)
	if err := row.Scan(&seed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("load state: %w", err)
	}
	if seed < 0 || seed > int64(^uint32(0)) {
		return 0, false, &storage.MalformedStateError{Location: s.path, Content: fmt.Sprint(seed)}
	}
	return uint32(seed), true, nil
}

// Save upserts the state row.
func (s *Store) Save(ctx context.Context, seed uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sequence_state (id, seed, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET seed = excluded.seed, updated_at = excluded.updated_at`,
		stateRowID,
		int64(seed),
		s.clock().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

var _ storage.StateStore = (*Store)(nil)
