package questionnaire

import "fmt"

// ValidateQuestion checks the invariants of a single question as received
// from the remote service.
func ValidateQuestion(q Question) error {
	if q.ID == "" {
		return fmt.Errorf("question at index %d has no id", q.Index)
	}
	if q.Index < 1 {
		return fmt.Errorf("question %s has invalid index %d", q.ID, q.Index)
	}
	if q.Issues.UnresolvedCommentsCount < 0 {
		return fmt.Errorf("question %s has negative unresolved comment count", q.ID)
	}
	if q.Answer == nil {
		return nil
	}
	if q.Answer.IsNotApplicable && q.Answer.SelectedOption != nil {
		return fmt.Errorf("question %s is marked not applicable but has a selected option", q.ID)
	}
	if opt := q.Answer.SelectedOption; opt != nil {
		if _, ok := q.OptionByID(opt.ID); !ok {
			return fmt.Errorf("question %s selects unknown option %s", q.ID, opt.ID)
		}
	}
	return nil
}

// ValidateQuestions checks every question plus the list-level invariant that
// indexes are unique and strictly increasing.
func ValidateQuestions(questions []Question) error {
	prev := 0
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			return err
		}
		if q.Index <= prev {
			return fmt.Errorf("question %s has index %d out of order (previous %d)", q.ID, q.Index, prev)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true
		prev = q.Index
	}
	return nil
}
