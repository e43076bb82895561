// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is built from db.GetSchemaSQL() so tests run against
// the same schema as production. Do not hardcode CREATE TABLE statements in
// test files; use setupTestDB() and the seed helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/assess/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedActivity inserts a raw activity row with an explicit timestamp.
func seedActivity(t *testing.T, db *sql.DB, id, questionnaireID, questionID, action, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO answer_activity (id, assessment_id, questionnaire_id, question_id, action, created_at) VALUES (?, 'as-1', ?, ?, ?, ?)",
		id, questionnaireID, questionID, action, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
}
