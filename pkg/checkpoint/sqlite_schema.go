package checkpoint

// SchemaVersion is the current checkpoint database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the checkpoint schema.
const Schema = `
-- Case checkpoints, one live row per case
CREATE TABLE IF NOT EXISTS checkpoints (
    token TEXT PRIMARY KEY,
    case_id TEXT NOT NULL UNIQUE,
    phase TEXT NOT NULL,
    officer_id TEXT,
    saved_at TIMESTAMP NOT NULL,
    record TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkpoints_saved_at ON checkpoints(saved_at);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`
