package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in schema_version after the schema is applied.
const SchemaVersion = 1

// SchemaSQL is the complete ledger schema.
//
// This is the single source of truth for the database schema. Tests build
// their in-memory databases from GetSchemaSQL() rather than declaring
// tables of their own, so a repository that references a missing column
// fails its tests with "no such column".
const SchemaSQL = `
-- Recording sessions (one row per record invocation)
CREATE TABLE IF NOT EXISTS recording_sessions (
	id TEXT PRIMARY KEY,
	camera_id TEXT NOT NULL,
	location_path TEXT NOT NULL,
	stream_url TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL,
	output_dir TEXT NOT NULL,
	state TEXT NOT NULL CHECK(state IN ('recording', 'completed', 'interrupted', 'failed')) DEFAULT 'recording',
	error TEXT,
	segment_count INTEGER NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	ended_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_recording_sessions_camera ON recording_sessions(camera_id);
CREATE INDEX IF NOT EXISTS idx_recording_sessions_started ON recording_sessions(started_at);

-- Daily archives (one row per camera stitch attempt)
CREATE TABLE IF NOT EXISTS archives (
	id TEXT PRIMARY KEY,
	camera_id TEXT NOT NULL,
	date TEXT NOT NULL,
	output_path TEXT NOT NULL,
	segment_count INTEGER NOT NULL DEFAULT 0,
	source_deleted INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('stitched', 'failed')),
	error TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_archives_camera ON archives(camera_id);
CREATE INDEX IF NOT EXISTS idx_archives_date ON archives(date);
`

// InitSchema applies SchemaSQL and records the schema version. It is safe
// to run against an existing ledger.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	if _, err := conn.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
