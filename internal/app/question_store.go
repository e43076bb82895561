package app

import (
	"fmt"
	"sync"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/core/sidebar"
)

// Scope identifies the questionnaire a session is working on.
type Scope struct {
	AssessmentID    string
	QuestionnaireID string
}

// QuestionPatch describes a partial update of a stored question.
// Nil fields are left unchanged.
type QuestionPatch struct {
	Answer *questionnaire.Answer
	Counts *questionnaire.Counts
	Issues *questionnaire.Issues
}

// QuestionStore is the single source of truth of a questionnaire session.
// It is owned by the session and injected into the services that need it.
// Every reader returns a copy.
type QuestionStore struct {
	mu sync.RWMutex

	scope     Scope
	questions []questionnaire.Question

	// filter is the active issue filter set; the visible list is derived
	// from it on every read.
	filter issue.FilterSet

	selected  *questionnaire.Question
	selectSeq uint64 // bumped on every selection change

	history []questionnaire.HistoryEntry
	levels  []questionnaire.ConfidenceLevel
}

// NewQuestionStore creates an empty store.
func NewQuestionStore() *QuestionStore {
	return &QuestionStore{}
}

// SetScope records the assessment and questionnaire being worked on.
func (s *QuestionStore) SetScope(scope Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
}

// Scope returns the current session scope.
func (s *QuestionStore) Scope() Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// Load replaces the question list. The active filter is kept.
func (s *QuestionStore) Load(questions []questionnaire.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = questionnaire.CloneAll(questions)
}

// Select makes q the current question.
func (s *QuestionStore) Select(q questionnaire.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := q.Clone()
	s.selected = &c
	s.selectSeq++
}

// ClearSelection drops the current question.
func (s *QuestionStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.selectSeq++
}

// UpdateQuestion merges patch into the question with the given id, both in
// the list and in the current question when it refers to the same id.
func (s *QuestionStore) UpdateQuestion(id string, patch QuestionPatch) error {
	if id == "" {
		return fmt.Errorf("cannot update a question without id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.questions {
		if s.questions[i].ID == id {
			applyPatch(&s.questions[i], patch)
			found = true
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		applyPatch(s.selected, patch)
		found = true
	}
	if !found {
		return fmt.Errorf("question %s not found", id)
	}
	return nil
}

func applyPatch(q *questionnaire.Question, patch QuestionPatch) {
	if patch.Answer != nil {
		q.Answer = patch.Answer.Clone()
	}
	if patch.Counts != nil {
		q.Counts = *patch.Counts
	}
	if patch.Issues != nil {
		q.Issues = *patch.Issues
	}
}

// AppendHistory records an answer history entry.
func (s *QuestionStore) AppendHistory(entry questionnaire.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Answer = *entry.Answer.Clone()
	s.history = append(s.history, entry)
}

// SetFilter replaces the active issue filters. An empty set shows every
// question.
func (s *QuestionStore) SetFilter(active issue.FilterSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = active
}

// Filter returns the active issue filters.
func (s *QuestionStore) Filter() issue.FilterSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetConfidenceLevels stores the confidence level catalogue.
func (s *QuestionStore) SetConfidenceLevels(levels []questionnaire.ConfidenceLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels = append([]questionnaire.ConfidenceLevel(nil), levels...)
}

// Reset discards all session state.
func (s *QuestionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = Scope{}
	s.questions = nil
	s.filter = issue.FilterSet{}
	s.selected = nil
	s.selectSeq++
	s.history = nil
	s.levels = nil
}

// Questions returns a copy of the question list.
func (s *QuestionStore) Questions() []questionnaire.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return questionnaire.CloneAll(s.questions)
}

// Len returns the number of loaded questions.
func (s *QuestionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}

// QuestionAt returns the question at a zero-based position.
func (s *QuestionStore) QuestionAt(idx int) (questionnaire.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.questions) {
		return questionnaire.Question{}, false
	}
	return s.questions[idx].Clone(), true
}

// Question returns the listed question with the given id.
func (s *QuestionStore) Question(id string) (questionnaire.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q.Clone(), true
		}
	}
	return questionnaire.Question{}, false
}

// Selected returns the current question.
func (s *QuestionStore) Selected() (questionnaire.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return questionnaire.Question{}, false
	}
	return s.selected.Clone(), true
}

// Selection returns the current question with its selection sequence number.
func (s *QuestionStore) Selection() (questionnaire.Question, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return questionnaire.Question{}, s.selectSeq, false
	}
	return s.selected.Clone(), s.selectSeq, true
}

// FilteredQuestions returns the questions matching the active filters in
// list order. Membership follows the current issues of each question.
// Without a filter this is the full list.
func (s *QuestionStore) FilteredQuestions() []questionnaire.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return questionnaire.CloneAll(sidebar.Filter(s.questions, s.filter))
}

// ViewIndexes returns the list positions of the visible questions.
func (s *QuestionStore) ViewIndexes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, 0, len(s.questions))
	for i, q := range s.questions {
		if issue.MatchesAnyActive(q.Issues, s.filter) {
			out = append(out, i)
		}
	}
	return out
}

// History returns the recorded answer history, oldest first.
func (s *QuestionStore) History() []questionnaire.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]questionnaire.HistoryEntry, len(s.history))
	for i, h := range s.history {
		h.Answer = *h.Answer.Clone()
		out[i] = h
	}
	return out
}

// ConfidenceLevels returns the confidence level catalogue.
func (s *QuestionStore) ConfidenceLevels() []questionnaire.ConfidenceLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]questionnaire.ConfidenceLevel(nil), s.levels...)
}
