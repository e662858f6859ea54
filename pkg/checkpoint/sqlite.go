package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"casefold-hq/triage/pkg/casefile"
)

// SQLiteConfig contains configuration for the SQLite checkpoint backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/checkpoints.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) a SQLite checkpoint store.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "checkpoint.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{db: db, config: config, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite checkpoint store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}
	return nil
}

// Save persists a snapshot of the record and returns a fresh token. A
// previous checkpoint of the same case is replaced.
func (s *SQLiteStore) Save(ctx context.Context, rec *casefile.CaseRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", NewStorageError("sqlite", "marshal", err)
	}

	token := newToken()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (token, case_id, phase, officer_id, saved_at, record)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(case_id) DO UPDATE SET
			token = excluded.token,
			phase = excluded.phase,
			saved_at = excluded.saved_at,
			record = excluded.record
	`, token, rec.CaseID, string(rec.Phase), rec.OfficerID, time.Now().UTC(), string(data))
	if err != nil {
		return "", NewStorageError("sqlite", "save", err)
	}

	s.logger.Debug("checkpoint saved", "case_id", rec.CaseID, "phase", rec.Phase)
	return token, nil
}

// Load resolves a token to the saved record.
func (s *SQLiteStore) Load(ctx context.Context, token string) (*casefile.CaseRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM checkpoints WHERE token = ?`, token).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "load", err)
	}

	var rec casefile.CaseRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, NewStorageError("sqlite", "unmarshal", err)
	}
	return &rec, nil
}

// Delete removes a checkpoint. Unknown tokens are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE token = ?`, token); err != nil {
		return NewStorageError("sqlite", "delete", err)
	}
	return nil
}

// List returns tokens saved before cutoff, oldest first.
func (s *SQLiteStore) List(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `SELECT token FROM checkpoints ORDER BY saved_at ASC`
	args := []any{}
	if !cutoff.IsZero() {
		query = `SELECT token FROM checkpoints WHERE saved_at < ? ORDER BY saved_at ASC`
		args = append(args, cutoff.UTC())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, NewStorageError("sqlite", "list_scan", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_rows", err)
	}
	return tokens, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
