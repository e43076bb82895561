// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/core/review"
)

// SessionService defines the primary port for answering a questionnaire.
type SessionService interface {
	// Start loads a questionnaire and positions the session on a question.
	// A zero position resumes at the last remembered question.
	Start(ctx context.Context, req StartSessionRequest) (*SessionInfo, error)

	// Close discards the session state.
	Close(ctx context.Context)

	// Current returns the current question and navigation flags.
	Current(ctx context.Context) (*QuestionView, error)

	// Submit sends an answer for the current question.
	Submit(ctx context.Context, req SubmitAnswerRequest) error

	// SelectOption applies the mode policy to an option choice.
	SelectOption(ctx context.Context, optionID string) error

	// StageConfidence sets the staged confidence level (advanced mode).
	StageConfidence(ctx context.Context, levelID int) error

	// StageNotApplicable marks the staged answer not applicable (advanced mode).
	StageNotApplicable(ctx context.Context, notApplicable bool) error

	// Staged returns the staged answer of the current question.
	Staged(ctx context.Context) (*StagedAnswer, error)

	// SubmitStaged submits the staged answer (advanced mode).
	SubmitStaged(ctx context.Context) error

	// Approve approves the pending answer of the current question.
	Approve(ctx context.Context) error

	// SetAutoNext toggles advancing after an explicit submit.
	SetAutoNext(ctx context.Context, enabled bool)

	// GoPrevious moves one question back.
	GoPrevious(ctx context.Context) error

	// GoNext moves one question forward, entering review after the last one.
	GoNext(ctx context.Context) error

	// GoTo moves to a 1-based position.
	GoTo(ctx context.Context, position int) error

	// ListItems returns the side list rows.
	ListItems(ctx context.Context) []ListItem

	// Completion returns answered counts and the completion percentage.
	Completion(ctx context.Context) Completion

	// FilterOptions returns the issue filters with their checked state.
	FilterOptions(ctx context.Context) []issue.FilterOption

	// SetFilterEnabled toggles an issue filter.
	SetFilterEnabled(ctx context.Context, id issue.ID, enabled bool) error

	// ToggleIssueChips flips chip visibility and returns the new state.
	ToggleIssueChips(ctx context.Context) bool

	// ToggleSidebar flips the side list and returns the new state.
	ToggleSidebar(ctx context.Context) bool

	// History returns the answer history recorded during the session.
	History(ctx context.Context) []questionnaire.HistoryEntry

	// ConfidenceLevels returns the confidence level catalogue.
	ConfidenceLevels(ctx context.Context) []questionnaire.ConfidenceLevel

	// ReviewSummary builds the end-of-questionnaire summary.
	ReviewSummary(ctx context.Context) (*ReviewSummary, error)

	// Activity returns the journal of answers submitted for this questionnaire.
	Activity(ctx context.Context, limit int) ([]*ActivityEntry, error)
}

// StartSessionRequest contains parameters for starting a session.
type StartSessionRequest struct {
	QuestionnaireID string
	Position        int // 1-based, 0 resumes
}

// SessionInfo describes a started session.
type SessionInfo struct {
	AssessmentID    string
	QuestionnaireID string
	Mode            questionnaire.Mode
	Total           int
	Position        int
}

// SubmitAnswerRequest contains parameters for submitting an answer.
type SubmitAnswerRequest struct {
	Value                   *questionnaire.Option // nil clears the answer
	NotApplicable           bool
	ConfidenceLevelID       *int
	SubmitOnAnswerSelection bool
}

// QuestionView is the current question with its navigation state.
type QuestionView struct {
	Question   questionnaire.Question
	Position   int // 1-based, 0 in review
	Total      int
	InReview   bool
	IsAtStart  bool
	IsAtEnd    bool
	Chips      []issue.Chip
	Submitting bool
	Approving  bool
	CanApprove bool
}

// StagedAnswer is the locally staged answer of advanced mode.
type StagedAnswer struct {
	QuestionID        string
	Option            *questionnaire.Option
	NotApplicable     bool
	ConfidenceLevelID *int
	CanSubmit         bool
	Reason            string // why submit is disabled
}

// ListItem is a side list row.
type ListItem struct {
	Key    string
	Idx    int
	Index  int
	Title  string
	Active bool
	Chips  []issue.Chip // empty when chips are hidden
}

// Completion summarizes answered questions.
type Completion struct {
	Answered int
	Total    int
	Percent  int
}

// ReviewSummary is the end-of-questionnaire summary.
type ReviewSummary struct {
	Status   review.Status
	Percent  int
	Answered int
	Total    int
	Config   review.Config
	HasNext  bool
	Next     *NextTarget
	Path     *Breadcrumb
}

// TextKeys returns the copy key of each text block.
func (r *ReviewSummary) TextKeys() []string {
	keys := make([]string, len(r.Config.Texts))
	for i, b := range r.Config.Texts {
		keys[i] = b.Key(r.HasNext)
	}
	return keys
}

// NextTarget is where a "continue" action leads.
type NextTarget struct {
	QuestionnaireID string
	QuestionIndex   int
}

// Breadcrumb holds display titles of the questionnaire's location.
type Breadcrumb struct {
	Space         string
	Assessment    string
	Questionnaire string
}

// ActivityEntry is one journal row.
type ActivityEntry struct {
	ID                string
	QuestionID        string
	Action            string
	ActorID           string
	OptionID          string
	ConfidenceLevelID int
	NotApplicable     bool
	CreatedAt         string
}
