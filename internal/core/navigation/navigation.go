// Package navigation contains the pure position arithmetic for stepping
// through a questionnaire.
// This is part of the Functional Core - no I/O, only pure functions.
package navigation

// ReviewSentinel is the resolved position of the terminal review state.
// It never indexes a question.
const ReviewSentinel = -1

// ResolvePosition converts a 1-based external position into a zero-based
// index clamped into [0, total-1]. The review state resolves to ReviewSentinel.
// An empty questionnaire resolves to 0.
func ResolvePosition(raw, total int, review bool) int {
	if review {
		return ReviewSentinel
	}
	idx := raw - 1
	if idx < 0 {
		idx = 0
	}
	if last := total - 1; idx > last {
		idx = last
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// IsReview reports whether index is the review sentinel.
func IsReview(index int) bool {
	return index == ReviewSentinel
}

// IsAtStart reports whether there is nothing before index.
func IsAtStart(index int) bool {
	return index <= 0
}

// IsAtEnd reports whether index is the last question.
func IsAtEnd(index, total int) bool {
	return index >= total-1
}

// Step is the outcome of a movement.
type Step struct {
	Index  int
	Moved  bool
	Review bool
}

// Previous moves one question back over the full list.
func Previous(index, total int) Step {
	return PreviousInView(index, allIndexes(total))
}

// Next moves one question forward over the full list, entering review after
// the last question.
func Next(index, total int) Step {
	return NextInView(index, allIndexes(total))
}

// PreviousInView moves to the closest visible index before index.
// view holds the absolute indexes of the visible questions in ascending order.
func PreviousInView(index int, view []int) Step {
	if IsReview(index) || len(view) == 0 {
		return Step{Index: index}
	}
	for i := len(view) - 1; i >= 0; i-- {
		if view[i] < index {
			return Step{Index: view[i], Moved: true}
		}
	}
	return Step{Index: index}
}

// NextInView moves to the closest visible index after index. When nothing
// visible follows, the step enters review. An empty view never moves.
func NextInView(index int, view []int) Step {
	if IsReview(index) || len(view) == 0 {
		return Step{Index: index}
	}
	for _, v := range view {
		if v > index {
			return Step{Index: v, Moved: true}
		}
	}
	return Step{Index: ReviewSentinel, Moved: true, Review: true}
}

// ViewPosition returns the position of index inside view, or -1.
func ViewPosition(index int, view []int) int {
	for i, v := range view {
		if v == index {
			return i
		}
	}
	return -1
}

// IsAtViewStart reports whether no visible question precedes index.
func IsAtViewStart(index int, view []int) bool {
	if IsReview(index) {
		return true
	}
	return !PreviousInView(index, view).Moved
}

// IsAtViewEnd reports whether no visible question follows index.
func IsAtViewEnd(index int, view []int) bool {
	if IsReview(index) || len(view) == 0 {
		return true
	}
	return NextInView(index, view).Review
}

func allIndexes(total int) []int {
	out := make([]int, total)
	for i := range out {
		out[i] = i
	}
	return out
}
