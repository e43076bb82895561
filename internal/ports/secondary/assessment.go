// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/assess/internal/core/questionnaire"
)

// AssessmentGateway defines the secondary port for the remote assessment service.
type AssessmentGateway interface {
	// SubmitAnswer stores an answer and echoes the confirmed answer and counts.
	SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResult, error)

	// ApproveAnswer approves the pending answer of a question.
	ApproveAnswer(ctx context.Context, assessmentID, questionID string) error

	// GetQuestionIssues returns the current issue flags of a question.
	GetQuestionIssues(ctx context.Context, assessmentID, questionID string) (*questionnaire.Issues, error)

	// GetQuestionDetail returns a single question with its answer.
	GetQuestionDetail(ctx context.Context, assessmentID, questionID string) (*questionnaire.Question, error)

	// GetQuestionnaireAnswers returns one page of a questionnaire's questions.
	GetQuestionnaireAnswers(ctx context.Context, assessmentID, questionnaireID string, page, size int) (*QuestionPage, error)

	// GetNextQuestionnaire locates the questionnaire following this one.
	GetNextQuestionnaire(ctx context.Context, assessmentID, questionnaireID string) (*NextQuestionnaire, error)

	// GetPathInfo returns breadcrumb titles. Display-only.
	GetPathInfo(ctx context.Context, assessmentID, questionnaireID string) (*PathInfo, error)

	// GetConfidenceLevels returns the confidence level catalogue.
	GetConfidenceLevels(ctx context.Context) ([]questionnaire.ConfidenceLevel, error)
}

// SubmitAnswerRequest contains the payload of an answer submission.
type SubmitAnswerRequest struct {
	AssessmentID      string
	QuestionnaireID   string
	QuestionID        string
	AnswerOptionID    *string // nil clears the answer
	IsNotApplicable   bool
	ConfidenceLevelID *int
}

// SubmitAnswerResult is the server response to a submission.
// Either field may be nil when the server omits it.
type SubmitAnswerResult struct {
	Answer *questionnaire.ConfirmedAnswer
	Counts *questionnaire.Counts
}

// QuestionPage is one page of questionnaire questions.
type QuestionPage struct {
	Items []questionnaire.Question
	Total int
}

// Next questionnaire lookup statuses.
const (
	NextFound    = "FOUND"
	NextNotFound = "NOT_FOUND"
)

// NextQuestionnaire points at the questionnaire after the current one.
type NextQuestionnaire struct {
	Status        string
	ID            string
	QuestionIndex int
}

// Found reports whether a next questionnaire exists.
func (n *NextQuestionnaire) Found() bool {
	return n != nil && n.Status == NextFound
}

// PathInfo holds breadcrumb titles for display.
type PathInfo struct {
	SpaceTitle         string
	AssessmentTitle    string
	QuestionnaireTitle string
}
