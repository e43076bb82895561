// Package sidebar derives the filtered, annotated question list and the
// completion metrics shown next to a questionnaire.
// This is part of the Functional Core - no I/O, only pure functions.
package sidebar

import (
	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
)

// Item is one row of the side list.
type Item struct {
	Key    string // question id
	Idx    int    // zero-based position in the unfiltered list
	Index  int    // 1-based display position
	Title  string
	Issues questionnaire.Issues
	Active bool
}

// AnsweredCount counts questions with a selected option.
func AnsweredCount(questions []questionnaire.Question) int {
	n := 0
	for _, q := range questions {
		if q.IsAnswered() {
			n++
		}
	}
	return n
}

// CompletionPercent is ceil(100 * answered / total), or 0 for an empty list.
func CompletionPercent(answered, total int) int {
	if total <= 0 {
		return 0
	}
	return (100*answered + total - 1) / total
}

// Filter returns the questions matching any active filter. With no active
// filter the input slice itself is returned, not a copy.
func Filter(questions []questionnaire.Question, active issue.FilterSet) []questionnaire.Question {
	if active.Len() == 0 {
		return questions
	}
	out := make([]questionnaire.Question, 0, len(questions))
	for _, q := range questions {
		if issue.MatchesAnyActive(q.Issues, active) {
			out = append(out, q)
		}
	}
	return out
}

// ListItems annotates the filtered questions with their original position and
// active flag. Original positions come from an id index built once over the
// full list; positional lookup is only used for questions without an id.
// Active is decided by id, or by position when the question has no id.
func ListItems(all, filtered []questionnaire.Question, active *questionnaire.Question, selectedIdx int) []Item {
	indexByID := make(map[string]int, len(all))
	for i, q := range all {
		if q.ID != "" {
			indexByID[q.ID] = i
		}
	}

	items := make([]Item, 0, len(filtered))
	for _, q := range filtered {
		full := -1
		if q.ID != "" {
			if i, ok := indexByID[q.ID]; ok {
				full = i
			}
		}
		if full < 0 {
			full = positionOf(all, q)
		}

		var isActive bool
		if q.ID != "" {
			isActive = active != nil && q.ID == active.ID
		} else {
			isActive = full == selectedIdx
		}

		items = append(items, Item{
			Key:    q.ID,
			Idx:    full,
			Index:  q.Index,
			Title:  q.Title,
			Issues: q.Issues,
			Active: isActive,
		})
	}
	return items
}

// Contains reports whether q is among the filtered questions.
func Contains(filtered []questionnaire.Question, q questionnaire.Question) bool {
	for _, f := range filtered {
		if q.ID != "" && f.ID == q.ID {
			return true
		}
		if q.ID == "" && f.Index == q.Index {
			return true
		}
	}
	return false
}

func positionOf(all []questionnaire.Question, q questionnaire.Question) int {
	for i, candidate := range all {
		if candidate.ID == q.ID && candidate.Index == q.Index {
			return i
		}
	}
	return -1
}
