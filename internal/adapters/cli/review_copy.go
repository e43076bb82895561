package cli

import "github.com/example/assess/internal/core/issue"

// ReviewCopy is the English copy of the review screen keyed by text block key.
// "review.answered_of" is a format taking the answered and total counts.
var ReviewCopy = issue.LabelMap{
	"review.good_job":                    "Good job!",
	"review.all_answered":                "You answered all questions of this questionnaire.",
	"review.all_questionnaires_answered": "Every questionnaire of this assessment is answered.",
	"review.this_questionnaire_answered": "This questionnaire is complete. Continue with the next one.",
	"review.hmm":                         "Hmm!",
	"review.none_answered":               "You have not answered any question yet.",
	"review.recommend_answering":         "We recommend answering the questions before leaving.",
	"review.nice":                        "Nice!",
	"review.answered_of":                 "You answered %d of %d questions.",
	"review.some_unanswered":             "Some questions are still unanswered. Review them before moving on.",
}
