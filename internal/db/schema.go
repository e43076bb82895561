package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. TestSchemaSQL_MatchesMigrations keeps the two in step
const SchemaSQL = `
-- Answer activity (journal of submitted and approved answers)
CREATE TABLE IF NOT EXISTS answer_activity (
	id TEXT PRIMARY KEY,
	assessment_id TEXT NOT NULL,
	questionnaire_id TEXT NOT NULL,
	question_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('submit', 'clear', 'approve')),
	actor_id TEXT,
	option_id TEXT,
	confidence_level_id INTEGER,
	not_applicable INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_answer_activity_questionnaire ON answer_activity(assessment_id, questionnaire_id);
CREATE INDEX IF NOT EXISTS idx_answer_activity_question ON answer_activity(question_id);
`

// initSchema creates the journal schema on a fresh file, or runs pending
// migrations on an existing one.
func initSchema(conn *sql.DB) error {
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}
	if tableCount > 0 {
		return runMigrations(conn)
	}

	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := tx.Exec(schemaVersionSQL); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
