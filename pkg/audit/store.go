package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"casefold-hq/triage/pkg/casefile"
)

// ErrNotFound is returned by Get when no audit record exists for a case.
var ErrNotFound = errors.New("audit record not found")

const schema = `
CREATE TABLE IF NOT EXISTS audit_records (
    case_id TEXT PRIMARY KEY,
    officer TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    risk_level TEXT,
    risk_score REAL,
    approved BOOLEAN NOT NULL,
    topics_covered INTEGER NOT NULL,
    questions_asked INTEGER NOT NULL,
    record TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_recorded_at ON audit_records(recorded_at);
`

// StoreConfig configures the audit store.
type StoreConfig struct {
	// Path is the SQLite database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Store persists audit records.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	mu        sync.Mutex
	saveStmt  *sql.Stmt
	getStmt   *sql.Stmt
	closeOnce sync.Once
}

// NewStore opens (creating if necessary) an audit store at path.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database %q: %w", cfg.Path, err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}

	s := &Store{
		db:     db,
		logger: slog.Default().With("component", "audit.store"),
	}

	s.saveStmt, err = db.Prepare(`
		INSERT INTO audit_records
			(case_id, officer, created_at, recorded_at, risk_level, risk_score,
			 approved, topics_covered, questions_asked, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(case_id) DO UPDATE SET
			recorded_at = excluded.recorded_at,
			risk_level = excluded.risk_level,
			risk_score = excluded.risk_score,
			approved = excluded.approved,
			topics_covered = excluded.topics_covered,
			questions_asked = excluded.questions_asked,
			record = excluded.record
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare save statement: %w", err)
	}

	s.getStmt, err = db.Prepare(`SELECT record FROM audit_records WHERE case_id = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.logger.Info("audit store initialized", "path", cfg.Path)
	return s, nil
}

// Save persists an audit record, replacing any earlier record for the case.
func (s *Store) Save(ctx context.Context, rec casefile.AuditRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	_, err = s.saveStmt.ExecContext(ctx,
		rec.CaseID,
		rec.Officer,
		rec.CreatedAt.UTC(),
		time.Now().UTC(),
		string(rec.RiskLevel),
		rec.RiskScore,
		rec.Approved,
		rec.TopicsCoveredCount,
		rec.QuestionsAsked,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit record for case %s: %w", rec.CaseID, err)
	}

	s.logger.Debug("audit record saved", "case_id", rec.CaseID, "approved", rec.Approved)
	return nil
}

// Get returns the audit record for one case.
func (s *Store) Get(ctx context.Context, caseID string) (casefile.AuditRecord, error) {
	var data string
	err := s.getStmt.QueryRowContext(ctx, caseID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return casefile.AuditRecord{}, ErrNotFound
	}
	if err != nil {
		return casefile.AuditRecord{}, fmt.Errorf("failed to load audit record for case %s: %w", caseID, err)
	}

	var rec casefile.AuditRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return casefile.AuditRecord{}, fmt.Errorf("failed to unmarshal audit record: %w", err)
	}
	return rec, nil
}

// List returns the case IDs of stored audit records, most recent first,
// up to limit. A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT case_id FROM audit_records ORDER BY recorded_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.saveStmt.Close()
		s.getStmt.Close()
		err = s.db.Close()
	})
	return err
}
