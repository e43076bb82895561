package answer

import "github.com/example/assess/internal/core/questionnaire"

// Local is the answer as supplied by the user for one submission.
type Local struct {
	Option            *questionnaire.Option
	NotApplicable     bool
	ConfidenceLevelID *int
	AttachConfidence  bool
}

// ShouldAttachConfidence decides whether the confidence level travels with a
// submission: an option was chosen, the submission came from selecting an
// option, or the question is marked not applicable.
func ShouldAttachConfidence(value *questionnaire.Option, submitOnSelection, notApplicable bool) bool {
	return (value != nil && value.ID != "") || submitOnSelection || notApplicable
}

// Merge combines the server-confirmed answer with the locally supplied one
// and the prior stored answer. Each field takes the server value when present,
// then the local value, then the prior value.
//
// The selected option has no prior fallback since a nil local option means
// the answer is being cleared. The confidence level only survives while an
// option is selected.
func Merge(server *questionnaire.ConfirmedAnswer, local Local, prior *questionnaire.Answer) questionnaire.Answer {
	if server == nil {
		server = &questionnaire.ConfirmedAnswer{}
	}
	if prior == nil {
		prior = &questionnaire.Answer{}
	}

	var out questionnaire.Answer

	switch {
	case server.SelectedOption != nil:
		opt := *server.SelectedOption
		out.SelectedOption = &opt
	case local.Option != nil:
		opt := *local.Option
		out.SelectedOption = &opt
	}

	if out.SelectedOption != nil {
		switch {
		case server.ConfidenceLevel != nil:
			lvl := *server.ConfidenceLevel
			out.ConfidenceLevel = &lvl
		case local.AttachConfidence && local.ConfidenceLevelID != nil:
			out.ConfidenceLevel = &questionnaire.ConfidenceLevel{ID: *local.ConfidenceLevelID}
		case prior.ConfidenceLevel != nil:
			lvl := *prior.ConfidenceLevel
			out.ConfidenceLevel = &lvl
		}
	}

	if server.IsNotApplicable != nil {
		out.IsNotApplicable = *server.IsNotApplicable
	} else {
		out.IsNotApplicable = local.NotApplicable
	}

	if server.Approved != nil {
		out.Approved = *server.Approved
	} else {
		out.Approved = prior.Approved
	}

	if out.IsNotApplicable {
		out.SelectedOption = nil
		out.ConfidenceLevel = nil
	}

	return out
}

// RefreshIssues picks the freshly fetched flags when available and otherwise
// keeps the prior flags. IsUnanswered is always recomputed from the answer.
func RefreshIssues(prior questionnaire.Issues, fetched *questionnaire.Issues, current *questionnaire.Answer) questionnaire.Issues {
	out := prior
	if fetched != nil {
		out = *fetched
	}
	out.IsUnanswered = current == nil || current.SelectedOption == nil
	return out
}

// NextCounts overlays server counts on the prior counts and records one more
// answer history entry.
func NextCounts(prior questionnaire.Counts, server *questionnaire.Counts) questionnaire.Counts {
	out := prior
	if server != nil {
		out = *server
	}
	out.AnswerHistories = prior.AnswerHistories + 1
	return out
}

// TitleConfidence fills in a missing confidence title from the catalogue.
func TitleConfidence(level *questionnaire.ConfidenceLevel, levels []questionnaire.ConfidenceLevel) *questionnaire.ConfidenceLevel {
	if level == nil || level.Title != "" {
		return level
	}
	for _, l := range levels {
		if l.ID == level.ID {
			return &questionnaire.ConfidenceLevel{ID: l.ID, Title: l.Title}
		}
	}
	return level
}
