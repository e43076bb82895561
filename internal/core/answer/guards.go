// Package answer contains the pure business logic for answering questions.
// Guards are pure functions that evaluate preconditions without side effects.
package answer

import (
	"fmt"

	"github.com/example/assess/internal/core/questionnaire"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SubmitContext provides context for answer submission guards.
type SubmitContext struct {
	QuestionID         string // empty when no question is selected
	CanAnswer          bool
	OptionID           string // optional
	OptionIsKnown      bool   // only checked if OptionID != ""
	NotApplicable      bool
	MayNotBeApplicable bool
}

// CanSubmit evaluates whether an answer can be submitted.
// Rules:
// - A question must be selected
// - Viewer must hold the answer permission
// - The chosen option must belong to the question
// - Not applicable is only offered on questions that allow it
// - Not applicable excludes choosing an option
func CanSubmit(ctx SubmitContext) GuardResult {
	if ctx.QuestionID == "" {
		return GuardResult{Allowed: false, Reason: "no question selected"}
	}

	if !ctx.CanAnswer {
		return GuardResult{Allowed: false, Reason: "you do not have permission to answer questions"}
	}

	if ctx.OptionID != "" && !ctx.OptionIsKnown {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("option %s does not belong to question %s", ctx.OptionID, ctx.QuestionID),
		}
	}

	if ctx.NotApplicable && !ctx.MayNotBeApplicable {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("question %s cannot be marked not applicable", ctx.QuestionID),
		}
	}

	if ctx.NotApplicable && ctx.OptionID != "" {
		return GuardResult{Allowed: false, Reason: "a not applicable answer cannot select an option"}
	}

	return GuardResult{Allowed: true}
}

// StagedContext provides context for the explicit submit action of
// advanced mode.
type StagedContext struct {
	QuestionID     string
	CanAnswer      bool
	OptionSelected bool
	ConfidenceSet  bool
	NotApplicable  bool
}

// CanSubmitStaged evaluates whether the staged answer can be submitted.
// Rules:
// - A question must be selected and the viewer may answer
// - Something must be staged (option, not applicable or confidence)
// - A selected option requires a confidence level
func CanSubmitStaged(ctx StagedContext) GuardResult {
	if ctx.QuestionID == "" {
		return GuardResult{Allowed: false, Reason: "no question selected"}
	}

	if !ctx.CanAnswer {
		return GuardResult{Allowed: false, Reason: "you do not have permission to answer questions"}
	}

	if !ctx.OptionSelected && !ctx.NotApplicable && !ctx.ConfidenceSet {
		return GuardResult{Allowed: false, Reason: "nothing to submit: select an option or mark the question not applicable"}
	}

	if ctx.OptionSelected && !ctx.ConfidenceSet {
		return GuardResult{Allowed: false, Reason: "select a confidence level before submitting"}
	}

	return GuardResult{Allowed: true}
}

// ApproveContext provides context for answer approval guards.
type ApproveContext struct {
	QuestionID string
	CanApprove bool
	HasAnswer  bool
}

// CanApprove evaluates whether the pending answer can be approved.
// Rules:
// - A question must be selected
// - Viewer must hold the approve permission
// - There must be an answer to approve
func CanApprove(ctx ApproveContext) GuardResult {
	if ctx.QuestionID == "" {
		return GuardResult{Allowed: false, Reason: "no question selected"}
	}

	if !ctx.CanApprove {
		return GuardResult{Allowed: false, Reason: "you do not have permission to approve answers"}
	}

	if !ctx.HasAnswer {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("question %s has no answer to approve", ctx.QuestionID),
		}
	}

	return GuardResult{Allowed: true}
}

// HasAnswer reports whether a question carries an answer worth approving.
func HasAnswer(q questionnaire.Question) bool {
	return q.Answer != nil && (q.Answer.SelectedOption != nil || q.Answer.IsNotApplicable)
}
