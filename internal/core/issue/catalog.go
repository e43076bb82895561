// Package issue classifies per-question data-quality flags into labelled,
// filterable categories. The catalog is plain data evaluated by iteration;
// nothing here performs I/O or holds mutable state.
package issue

import (
	"fmt"

	"github.com/example/assess/internal/core/questionnaire"
)

// ID identifies an issue category.
type ID string

const (
	LowConfidence ID = "lowconf"
	NoEvidence    ID = "noevidence"
	Unresolved    ID = "unresolved"
	Unapproved    ID = "unapproved"
	Unanswered    ID = "unanswered"
)

// Tone is the visual weight of a chip.
type Tone string

const (
	ToneError    Tone = "error"
	ToneTertiary Tone = "tertiary"
)

// Rule is one row of the catalog.
type Rule struct {
	ID           ID
	LabelKey     string
	Tone         Tone
	ShowAsChip   bool
	ShowInFilter bool
	Predicate    func(questionnaire.Issues) bool
}

// Matches evaluates the rule against the current flags.
func (r Rule) Matches(issues questionnaire.Issues) bool {
	return r.Predicate != nil && r.Predicate(issues)
}

// catalog is evaluated in order; chips and filter options keep this order.
// "unanswered" is filterable but not a chip since it is shown as a badge.
var catalog = []Rule{
	{
		ID:           LowConfidence,
		LabelKey:     "issue.low_confidence",
		Tone:         ToneError,
		ShowAsChip:   true,
		ShowInFilter: true,
		Predicate:    func(i questionnaire.Issues) bool { return i.IsAnsweredWithLowConfidence },
	},
	{
		ID:           NoEvidence,
		LabelKey:     "issue.no_evidence",
		Tone:         ToneError,
		ShowAsChip:   true,
		ShowInFilter: true,
		Predicate:    func(i questionnaire.Issues) bool { return i.IsAnsweredWithoutEvidences },
	},
	{
		ID:           Unresolved,
		LabelKey:     "issue.unresolved_comments",
		Tone:         ToneError,
		ShowAsChip:   true,
		ShowInFilter: true,
		Predicate:    func(i questionnaire.Issues) bool { return i.UnresolvedCommentsCount > 0 },
	},
	{
		ID:           Unapproved,
		LabelKey:     "issue.unapproved_answer",
		Tone:         ToneTertiary,
		ShowAsChip:   true,
		ShowInFilter: true,
		Predicate:    func(i questionnaire.Issues) bool { return i.HasUnapprovedAnswer },
	},
	{
		ID:           Unanswered,
		LabelKey:     "issue.unanswered",
		Tone:         ToneError,
		ShowAsChip:   false,
		ShowInFilter: true,
		Predicate:    func(i questionnaire.Issues) bool { return i.IsUnanswered },
	},
}

// Rules returns a copy of the catalog in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the rule with the given id.
func Lookup(id ID) (Rule, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// ParseID converts user input into a known issue id.
func ParseID(s string) (ID, error) {
	if _, ok := Lookup(ID(s)); ok {
		return ID(s), nil
	}
	return "", fmt.Errorf("unknown issue filter %q", s)
}

// Chip is a matched, chip-visible category.
type Chip struct {
	ID    ID
	Label string
	Tone  Tone
}

// FilterOption describes one filter checkbox.
type FilterOption struct {
	ID      ID
	Label   string
	Checked bool
}

// Chips returns the chip-visible rules matching issues, in catalog order.
func Chips(issues questionnaire.Issues, labels Labeler) []Chip {
	labels = orDefault(labels)
	var chips []Chip
	for _, r := range catalog {
		if r.ShowAsChip && r.Matches(issues) {
			chips = append(chips, Chip{ID: r.ID, Label: labels.Label(r.LabelKey), Tone: r.Tone})
		}
	}
	return chips
}

// MatchesAnyActive reports whether any active rule matches.
// An empty filter set lets everything through.
func MatchesAnyActive(issues questionnaire.Issues, active FilterSet) bool {
	if active.Len() == 0 {
		return true
	}
	for _, r := range catalog {
		if active.Has(r.ID) && r.Matches(issues) {
			return true
		}
	}
	return false
}

// FilterOptions lists the filter-visible rules with their checked state.
func FilterOptions(active FilterSet, labels Labeler) []FilterOption {
	labels = orDefault(labels)
	var out []FilterOption
	for _, r := range catalog {
		if !r.ShowInFilter {
			continue
		}
		out = append(out, FilterOption{ID: r.ID, Label: labels.Label(r.LabelKey), Checked: active.Has(r.ID)})
	}
	return out
}
