package secondary

import (
	"context"

	"github.com/example/assess/internal/core/questionnaire"
)

// Notifier defines the secondary port for surfacing failures to the user.
type Notifier interface {
	// NotifyError reports a failed operation. op names the action, e.g. "submit answer".
	NotifyError(ctx context.Context, op string, err error)
}

// IdentityProvider defines the secondary port for the acting user.
type IdentityProvider interface {
	// CurrentUser returns the user recorded on answer history entries.
	CurrentUser(ctx context.Context) (questionnaire.User, error)

	// Permissions returns the viewer's permission flags.
	Permissions(ctx context.Context) (questionnaire.Permissions, error)
}

// PositionStore defines the secondary port for remembering the last visited
// question of each questionnaire.
type PositionStore interface {
	// SavePosition records a 1-based position.
	SavePosition(ctx context.Context, assessmentID, questionnaireID string, position int) error

	// LoadPosition returns the recorded position and whether one exists.
	LoadPosition(ctx context.Context, assessmentID, questionnaireID string) (int, bool, error)
}

// ActivityLog defines the secondary port for the session activity journal.
// Implementations extract the actor from context.
type ActivityLog interface {
	// Record appends an entry. The ID and CreatedAt are assigned by the log.
	Record(ctx context.Context, record *ActivityRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)
}

// Activity actions.
const (
	ActionSubmit  = "submit"
	ActionClear   = "clear"
	ActionApprove = "approve"
)

// ActivityRecord represents a journal entry as stored in persistence.
type ActivityRecord struct {
	ID                string
	AssessmentID      string
	QuestionnaireID   string
	QuestionID        string
	Action            string
	ActorID           string
	OptionID          string
	ConfidenceLevelID int // 0 when unset
	NotApplicable     bool
	CreatedAt         string
}

// ActivityFilters contains filter options for querying the journal.
type ActivityFilters struct {
	AssessmentID    string
	QuestionnaireID string
	QuestionID      string
	Limit           int
}
