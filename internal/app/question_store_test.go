package app

import (
	"testing"
	"time"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
)

func TestQuestionStore_ReadersReturnCopies(t *testing.T) {
	store := loadedStore(sampleQuestions())

	list := store.Questions()
	list[1].Answer.SelectedOption.ID = "mutated"
	list[0].Title = "mutated"

	q, _ := store.Question("q2")
	if q.Answer.SelectedOption.ID != "q2-b" {
		t.Error("Questions() leaked the stored answer")
	}
	first, _ := store.QuestionAt(0)
	if first.Title != "First" {
		t.Error("Questions() leaked the stored list")
	}
}

func TestQuestionStore_UpdateQuestionMergesPatch(t *testing.T) {
	store := loadedStore(sampleQuestions())
	q1, _ := store.QuestionAt(0)
	store.Select(q1)

	counts := questionnaire.Counts{AnswerHistories: 1, Evidences: 4}
	err := store.UpdateQuestion("q1", QuestionPatch{Counts: &counts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Question("q1")
	if got.Counts.Evidences != 4 {
		t.Errorf("expected counts to be patched, got %+v", got.Counts)
	}
	if got.Title != "First" || !got.Issues.IsUnanswered {
		t.Error("fields outside the patch must be kept")
	}

	selected, _ := store.Selected()
	if selected.Counts.Evidences != 4 {
		t.Error("selected question should follow the update")
	}
}

func TestQuestionStore_UpdateQuestionUnknownID(t *testing.T) {
	store := loadedStore(sampleQuestions())

	if err := store.UpdateQuestion("missing", QuestionPatch{}); err == nil {
		t.Error("expected error for unknown question")
	}
	if err := store.UpdateQuestion("", QuestionPatch{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestQuestionStore_UpdateLeavesOtherSelectionAlone(t *testing.T) {
	store := loadedStore(sampleQuestions())
	q2, _ := store.QuestionAt(1)
	store.Select(q2)

	issues := questionnaire.Issues{IsAnsweredWithLowConfidence: true}
	_ = store.UpdateQuestion("q1", QuestionPatch{Issues: &issues})

	selected, _ := store.Selected()
	if selected.ID != "q2" || selected.Issues.IsAnsweredWithLowConfidence {
		t.Errorf("unexpected selected %+v", selected)
	}
}

func TestQuestionStore_FilteredQuestionsFollowUpdates(t *testing.T) {
	store := loadedStore(sampleQuestions())
	store.SetFilter(issue.NewFilterSet(issue.Unanswered))

	view := store.ViewIndexes()
	if len(view) != 2 || view[0] != 0 || view[1] != 2 {
		t.Fatalf("unexpected view indexes %v", view)
	}

	// q3 gets a hint update and stays unanswered
	hinted := questionnaire.Issues{IsUnanswered: true, IsAnsweredWithoutEvidences: true}
	_ = store.UpdateQuestion("q3", QuestionPatch{Issues: &hinted})
	filtered := store.FilteredQuestions()
	if len(filtered) != 2 || !filtered[1].Issues.IsAnsweredWithoutEvidences {
		t.Errorf("filtered view should carry the latest stored state: %+v", filtered)
	}

	// answering q1 drops it out of the unanswered view
	answer := questionnaire.Answer{SelectedOption: &questionnaire.Option{ID: "q1-a"}}
	answeredIssues := questionnaire.Issues{}
	_ = store.UpdateQuestion("q1", QuestionPatch{Answer: &answer, Issues: &answeredIssues})

	filtered = store.FilteredQuestions()
	if len(filtered) != 1 || filtered[0].ID != "q3" {
		t.Errorf("answered question should leave the unanswered view, got %+v", filtered)
	}
	if view := store.ViewIndexes(); len(view) != 1 || view[0] != 2 {
		t.Errorf("unexpected view indexes %v", view)
	}

	store.SetFilter(issue.NewFilterSet())
	if len(store.FilteredQuestions()) != 3 || len(store.ViewIndexes()) != 3 {
		t.Error("an empty filter set should show every question")
	}
}

func TestQuestionStore_HistoryIsAppendOnly(t *testing.T) {
	store := loadedStore(sampleQuestions())
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	store.AppendHistory(questionnaire.HistoryEntry{CreatedBy: questionnaire.User{ID: "u-1"}, CreationTime: now})
	store.AppendHistory(questionnaire.HistoryEntry{CreatedBy: questionnaire.User{ID: "u-2"}, CreationTime: now})

	history := store.History()
	if len(history) != 2 || history[0].CreatedBy.ID != "u-1" || history[1].CreatedBy.ID != "u-2" {
		t.Errorf("unexpected history %+v", history)
	}
}

func TestQuestionStore_SelectionSequence(t *testing.T) {
	store := loadedStore(sampleQuestions())
	q1, _ := store.QuestionAt(0)

	_, before, ok := store.Selection()
	if ok {
		t.Fatal("nothing selected yet")
	}
	store.Select(q1)
	_, after, ok := store.Selection()
	if !ok || after == before {
		t.Error("Select should advance the selection sequence")
	}

	_ = store.UpdateQuestion("q1", QuestionPatch{Counts: &questionnaire.Counts{Comments: 1}})
	_, same, _ := store.Selection()
	if same != after {
		t.Error("updates must not count as a new selection")
	}
}

func TestQuestionStore_Reset(t *testing.T) {
	store := loadedStore(sampleQuestions())
	q1, _ := store.QuestionAt(0)
	store.Select(q1)
	store.SetConfidenceLevels([]questionnaire.ConfidenceLevel{{ID: 1}})
	store.AppendHistory(questionnaire.HistoryEntry{})

	store.Reset()

	if store.Len() != 0 || len(store.History()) != 0 || len(store.ConfidenceLevels()) != 0 {
		t.Error("reset should drop all state")
	}
	if _, ok := store.Selected(); ok {
		t.Error("reset should drop the selection")
	}
	if store.Scope() != (Scope{}) {
		t.Error("reset should drop the scope")
	}
}
