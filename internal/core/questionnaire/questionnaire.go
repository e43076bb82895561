// Package questionnaire contains the data model for a questionnaire session.
// This is part of the Functional Core - no I/O, only values and pure functions.
package questionnaire

import (
	"fmt"
	"time"
)

// Mode selects the answer-submission policy for a session.
type Mode string

const (
	ModeQuick    Mode = "quick"
	ModeAdvanced Mode = "advanced"
)

// ParseMode converts a config or flag value into a Mode.
// An empty value defaults to quick mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeQuick:
		return ModeQuick, nil
	case ModeAdvanced:
		return ModeAdvanced, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected quick or advanced)", s)
}

// Option is one selectable choice belonging to a question.
type Option struct {
	ID    string
	Index int
	Title string
}

// ConfidenceLevel is a certainty rating attached to an answer.
type ConfidenceLevel struct {
	ID    int
	Title string
}

// Answer is the stored answer of a question.
// IsNotApplicable and SelectedOption are mutually exclusive.
type Answer struct {
	SelectedOption  *Option
	ConfidenceLevel *ConfidenceLevel
	IsNotApplicable bool
	Approved        bool
}

// Clone returns a deep copy of the answer. A nil answer clones to nil.
func (a *Answer) Clone() *Answer {
	if a == nil {
		return nil
	}
	out := *a
	if a.SelectedOption != nil {
		opt := *a.SelectedOption
		out.SelectedOption = &opt
	}
	if a.ConfidenceLevel != nil {
		lvl := *a.ConfidenceLevel
		out.ConfidenceLevel = &lvl
	}
	return &out
}

// ConfirmedAnswer is the answer as echoed by the remote service.
// Nil fields were omitted by the server.
type ConfirmedAnswer struct {
	SelectedOption  *Option
	ConfidenceLevel *ConfidenceLevel
	IsNotApplicable *bool
	Approved        *bool
}

// Counts holds per-question counters shown next to a question.
type Counts struct {
	AnswerHistories int
	Evidences       int
	Comments        int
}

// Issues are the derived data-quality flags of a question.
type Issues struct {
	IsAnsweredWithLowConfidence bool
	IsAnsweredWithoutEvidences  bool
	UnresolvedCommentsCount     int
	HasUnapprovedAnswer         bool
	IsUnanswered                bool
}

// Question is a single assessable item.
type Question struct {
	ID                 string
	Index              int
	Title              string
	Hint               string
	Options            []Option
	Answer             *Answer
	Counts             Counts
	Issues             Issues
	MayNotBeApplicable bool
}

// Clone returns a deep copy so callers never share mutable state with the store.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = make([]Option, len(q.Options))
		copy(out.Options, q.Options)
	}
	out.Answer = q.Answer.Clone()
	return out
}

// IsAnswered reports whether an option has been selected.
func (q Question) IsAnswered() bool {
	return q.Answer != nil && q.Answer.SelectedOption != nil
}

// SelectedOptionID returns the selected option id or "" when unanswered.
func (q Question) SelectedOptionID() string {
	if !q.IsAnswered() {
		return ""
	}
	return q.Answer.SelectedOption.ID
}

// OptionByID looks up one of the question's options.
func (q Question) OptionByID(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// User identifies the acting user of a session.
type User struct {
	ID          string
	DisplayName string
	PictureLink string
}

// HistoryEntry records one answer change. Entries are append-only.
type HistoryEntry struct {
	CreatedBy    User
	Answer       Answer
	CreationTime time.Time
}

// Permissions gate which operations the viewer may invoke.
type Permissions struct {
	ViewDashboard  bool
	AnswerQuestion bool
	ApproveAnswer  bool
}

// CloneAll deep-copies a question list.
func CloneAll(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
