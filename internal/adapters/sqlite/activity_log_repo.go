// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/assess/internal/ctxutil"
	"github.com/example/assess/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLog with SQLite.
type ActivityLogRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ secondary.ActivityLog = (*ActivityLogRepository)(nil)

// NewActivityLogRepository creates a new SQLite activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db, now: time.Now}
}

// Record persists an answer activity entry. A missing ID is generated and a
// missing actor is taken from the context.
func (r *ActivityLogRepository) Record(ctx context.Context, record *secondary.ActivityRecord) error {
	if record == nil {
		return fmt.Errorf("activity record is required")
	}
	if record.QuestionID == "" {
		return fmt.Errorf("activity record needs a question id")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.ActorID == "" {
		record.ActorID = ctxutil.ActorFromContext(ctx)
	}

	var actorID, optionID sql.NullString
	var confidenceID sql.NullInt64
	if record.ActorID != "" {
		actorID = sql.NullString{String: record.ActorID, Valid: true}
	}
	if record.OptionID != "" {
		optionID = sql.NullString{String: record.OptionID, Valid: true}
	}
	if record.ConfidenceLevelID > 0 {
		confidenceID = sql.NullInt64{Int64: int64(record.ConfidenceLevelID), Valid: true}
	}

	createdAt := r.now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_activity (id, assessment_id, questionnaire_id, question_id, action, actor_id, option_id, confidence_level_id, not_applicable, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.AssessmentID,
		record.QuestionnaireID,
		record.QuestionID,
		record.Action,
		actorID,
		optionID,
		confidenceID,
		boolToInt(record.NotApplicable),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record answer activity: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return nil
}

// List retrieves activity entries matching the given filters, newest first.
func (r *ActivityLogRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := `SELECT id, assessment_id, questionnaire_id, question_id, action, actor_id, option_id, confidence_level_id, not_applicable, created_at FROM answer_activity WHERE 1=1`
	args := []any{}

	if filters.AssessmentID != "" {
		query += " AND assessment_id = ?"
		args = append(args, filters.AssessmentID)
	}

	if filters.QuestionnaireID != "" {
		query += " AND questionnaire_id = ?"
		args = append(args, filters.QuestionnaireID)
	}

	if filters.QuestionID != "" {
		query += " AND question_id = ?"
		args = append(args, filters.QuestionID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer activity: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ActivityRecord
	for rows.Next() {
		var (
			actorID       sql.NullString
			optionID      sql.NullString
			confidenceID  sql.NullInt64
			notApplicable int
			createdAt     time.Time
		)

		record := &secondary.ActivityRecord{}
		err := rows.Scan(&record.ID,
			&record.AssessmentID,
			&record.QuestionnaireID,
			&record.QuestionID,
			&record.Action,
			&actorID,
			&optionID,
			&confidenceID,
			&notApplicable,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer activity: %w", err)
		}
		record.ActorID = actorID.String
		record.OptionID = optionID.String
		record.ConfidenceLevelID = int(confidenceID.Int64)
		record.NotApplicable = notApplicable != 0
		record.CreatedAt = createdAt.Format(time.RFC3339)

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list answer activity: %w", err)
	}

	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
