// Package review classifies questionnaire completion for the end screen.
// This is part of the Functional Core - no I/O, only pure functions.
package review

// Status is the review bucket of a finished questionnaire.
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// StatusFor buckets a completion percentage.
func StatusFor(percent int) Status {
	switch {
	case percent <= 0:
		return StatusEmpty
	case percent >= 100:
		return StatusComplete
	default:
		return StatusIncomplete
	}
}

// TextBlock is one line of end-screen copy.
// Keys holds one copy key, or two when the line depends on whether a next
// questionnaire exists: Keys[0] without, Keys[1] with.
type TextBlock struct {
	Keys    []string
	Color   string
	Variant string
}

// Key picks the copy key for the block.
func (b TextBlock) Key(hasNext bool) string {
	if len(b.Keys) == 0 {
		return ""
	}
	if hasNext && len(b.Keys) > 1 {
		return b.Keys[1]
	}
	return b.Keys[0]
}

// Config is the static presentation data of a bucket.
type Config struct {
	Status Status
	Image  string
	Texts  []TextBlock
}

var configs = map[Status]Config{
	StatusComplete: {
		Status: StatusComplete,
		Image:  "success-check.svg",
		Texts: []TextBlock{
			{Keys: []string{"review.good_job"}, Color: "primary", Variant: "headline-medium"},
			{Keys: []string{"review.all_answered"}, Color: "primary", Variant: "headline-small"},
			{
				Keys:    []string{"review.all_questionnaires_answered", "review.this_questionnaire_answered"},
				Color:   "ink",
				Variant: "semibold-large",
			},
		},
	},
	StatusEmpty: {
		Status: StatusEmpty,
		Image:  "failure-emoji.svg",
		Texts: []TextBlock{
			{Keys: []string{"review.hmm"}, Color: "error", Variant: "headline-medium"},
			{Keys: []string{"review.none_answered"}, Color: "error", Variant: "headline-small"},
			{Keys: []string{"review.recommend_answering"}, Color: "ink", Variant: "semibold-large"},
		},
	},
	StatusIncomplete: {
		Status: StatusIncomplete,
		Image:  "warning-empty-state.svg",
		Texts: []TextBlock{
			{Keys: []string{"review.nice"}, Color: "warning", Variant: "headline-medium"},
			{Keys: []string{"review.answered_of"}, Color: "warning", Variant: "headline-small"},
			{Keys: []string{"review.some_unanswered"}, Color: "ink", Variant: "semibold-large"},
		},
	},
}

// ConfigFor returns the presentation data of a bucket.
func ConfigFor(status Status) Config {
	cfg := configs[status]
	texts := make([]TextBlock, len(cfg.Texts))
	copy(texts, cfg.Texts)
	cfg.Texts = texts
	return cfg
}
