package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/primary"
)

type sessionFixture struct {
	svc       *SessionServiceImpl
	gateway   *mockGateway
	notifier  *mockNotifier
	identity  *mockIdentity
	positions *mockPositionStore
	activity  *mockActivityLog
}

func newSessionFixture(mode questionnaire.Mode, questions []questionnaire.Question) *sessionFixture {
	f := &sessionFixture{
		gateway:   newMockGateway(questions),
		notifier:  &mockNotifier{},
		identity:  newMockIdentity(),
		positions: newMockPositionStore(),
		activity:  &mockActivityLog{},
	}
	f.svc = NewSessionService(SessionConfig{
		AssessmentID:      "as-1",
		Mode:              mode,
		DefaultConfidence: 3,
	}, f.gateway, f.notifier, f.identity, f.positions, f.activity, issue.DefaultLabels, testLogger())
	return f
}

func manyQuestions(n int) []questionnaire.Question {
	out := make([]questionnaire.Question, n)
	for i := range out {
		id := fmt.Sprintf("q%d", i+1)
		out[i] = questionnaire.Question{ID: id, Index: i + 1, Title: id, Options: options(id)}
	}
	return out
}

func TestSessionStart_PagesThroughQuestions(t *testing.T) {
	f := newSessionFixture(questionnaire.ModeQuick, manyQuestions(120))

	info, err := f.svc.Start(context.Background(), primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Total != 120 || info.Position != 1 {
		t.Errorf("unexpected info %+v", info)
	}
	if len(f.gateway.pageCalls) != 3 {
		t.Errorf("expected 3 pages of 50, got %v", f.gateway.pageCalls)
	}
	if len(f.svc.ConfidenceLevels(context.Background())) != 5 {
		t.Error("confidence levels should be loaded")
	}
}

func TestSessionStart_ExactPageBoundary(t *testing.T) {
	f := newSessionFixture(questionnaire.ModeQuick, manyQuestions(50))

	info, err := f.svc.Start(context.Background(), primary.StartSessionRequest{QuestionnaireID: "qn-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Total != 50 || len(f.gateway.pageCalls) != 1 {
		t.Errorf("total reached should stop paging: %+v, pages %v", info, f.gateway.pageCalls)
	}
}

func TestSessionStart_ResumesSavedPosition(t *testing.T) {
	f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
	f.positions.positions["as-1/qn-1"] = 3

	info, err := f.svc.Start(context.Background(), primary.StartSessionRequest{QuestionnaireID: "qn-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Position != 3 {
		t.Errorf("expected resume at 3, got %d", info.Position)
	}
}

func TestSessionStart_Failures(t *testing.T) {
	tests := []struct {
		name      string
		req       primary.StartSessionRequest
		setup     func(f *sessionFixture)
		wantNotif int
	}{
		{"missing questionnaire", primary.StartSessionRequest{}, func(f *sessionFixture) {}, 0},
		{"page fetch fails", primary.StartSessionRequest{QuestionnaireID: "qn-1"}, func(f *sessionFixture) { f.gateway.pageErr = errors.New("down") }, 1},
		{"levels fetch fails", primary.StartSessionRequest{QuestionnaireID: "qn-1"}, func(f *sessionFixture) { f.gateway.levelsErr = errors.New("down") }, 1},
		{"invalid question list", primary.StartSessionRequest{QuestionnaireID: "qn-1"}, func(f *sessionFixture) {
			f.gateway.questions[1].Index = 1
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
			tt.setup(f)

			if _, err := f.svc.Start(context.Background(), tt.req); err == nil {
				t.Error("expected error")
			}
			if f.notifier.count() != tt.wantNotif {
				t.Errorf("notifications = %d, want %d", f.notifier.count(), tt.wantNotif)
			}
		})
	}
}

func TestSessionStart_EmptyQuestionnaire(t *testing.T) {
	f := newSessionFixture(questionnaire.ModeQuick, nil)

	info, err := f.svc.Start(context.Background(), primary.StartSessionRequest{QuestionnaireID: "qn-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Total != 0 || info.Position != 0 {
		t.Errorf("unexpected info %+v", info)
	}
	if _, err := f.svc.Current(context.Background()); !errors.Is(err, ErrNoSelectedQuestion) {
		t.Errorf("expected ErrNoSelectedQuestion, got %v", err)
	}
}

func TestSession_QuickFlowToReview(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})

	if err := f.svc.SelectOption(ctx, "q1-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, _ := f.svc.Current(ctx)
	if view.Question.ID != "q2" || view.Position != 2 {
		t.Errorf("quick mode should advance to q2, got %+v", view)
	}

	_ = f.svc.GoNext(ctx)
	_ = f.svc.GoNext(ctx)
	view, _ = f.svc.Current(ctx)
	if !view.InReview {
		t.Error("expected review after the last question")
	}

	summary, err := f.svc.ReviewSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Answered != 2 || summary.Percent != 67 {
		t.Errorf("unexpected summary %+v", summary)
	}

	activity, _ := f.svc.Activity(ctx, 10)
	if len(activity) != 1 || activity[0].QuestionID != "q1" {
		t.Errorf("unexpected activity %+v", activity)
	}
}

func TestSession_CurrentView(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeAdvanced, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 2})

	view, err := f.svc.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.IsAtStart || view.IsAtEnd || view.Total != 3 {
		t.Errorf("unexpected flags %+v", view)
	}
	if !view.CanApprove {
		t.Error("q2 has an unapproved answer")
	}
	if len(view.Chips) != 2 {
		t.Errorf("advanced mode shows chips, got %+v", view.Chips)
	}
}

func TestSession_StagingRequiresAdvancedMode(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})

	if err := f.svc.StageConfidence(ctx, 2); err == nil {
		t.Error("staging is advanced-only")
	}
	if err := f.svc.SubmitStaged(ctx); err == nil {
		t.Error("staged submit is advanced-only")
	}
}

func TestSession_ApproveAdvancesInQuickMode(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 2})

	if err := f.svc.Approve(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, _ := f.svc.Current(ctx)
	if view.Position != 3 {
		t.Errorf("expected advance to 3, got %d", view.Position)
	}
}

func TestSession_ApproveStaysInAdvancedMode(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeAdvanced, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 2})

	_ = f.svc.Approve(ctx)
	view, _ := f.svc.Current(ctx)
	if view.Position != 2 {
		t.Errorf("advanced mode without AutoNext stays, got %d", view.Position)
	}
}

func TestSession_FilterAndList(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeAdvanced, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 2})

	if err := f.svc.SetFilterEnabled(ctx, issue.Unanswered, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := f.svc.ListItems(ctx)
	if len(items) != 2 || !items[0].Active {
		t.Errorf("expected q1 active after filtering, got %+v", items)
	}
	if c := f.svc.Completion(ctx); c.Total != 3 {
		t.Errorf("completion counts every question, got %+v", c)
	}
}

func TestSession_CloseResets(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeQuick, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})

	f.svc.Close(ctx)

	if _, err := f.svc.Current(ctx); !errors.Is(err, ErrNoSelectedQuestion) {
		t.Errorf("expected no selection after close, got %v", err)
	}
	if err := f.svc.GoTo(ctx, 1); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSession_FilteredListFollowsSubmittedAnswers(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeAdvanced, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})
	_ = f.svc.SetFilterEnabled(ctx, issue.Unanswered, true)

	if err := f.svc.Submit(ctx, primary.SubmitAnswerRequest{
		Value:             &questionnaire.Option{ID: "q1-a"},
		ConfidenceLevelID: intPtr(4),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := f.svc.ListItems(ctx)
	if len(items) != 1 || items[0].Key != "q3" {
		t.Errorf("answered q1 should leave the unanswered list, got %+v", items)
	}

	view, _ := f.svc.Current(ctx)
	if !view.IsAtStart {
		t.Error("no visible question precedes q1 once it is answered")
	}
	_ = f.svc.GoNext(ctx)
	view, _ = f.svc.Current(ctx)
	if view.Question.ID != "q3" {
		t.Errorf("expected q3 next, got %s", view.Question.ID)
	}
	_ = f.svc.GoPrevious(ctx)
	view, _ = f.svc.Current(ctx)
	if view.Question.ID != "q3" {
		t.Errorf("answered q1 is hidden, previous should stay on q3, got %s", view.Question.ID)
	}
}

func TestSession_QuickAdvanceSkipsQuestionsAnsweredMeanwhile(t *testing.T) {
	ctx := context.Background()
	questions := manyQuestions(4)
	for i := range questions {
		questions[i].Issues = questionnaire.Issues{IsUnanswered: true}
	}
	f := newSessionFixture(questionnaire.ModeQuick, questions)
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 2})
	_ = f.svc.SetFilterEnabled(ctx, issue.Unanswered, true)

	// answer q2, then go back to q1 and answer it
	_ = f.svc.SelectOption(ctx, "q2-a")
	_ = f.svc.GoTo(ctx, 1)
	if err := f.svc.SelectOption(ctx, "q1-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, _ := f.svc.Current(ctx)
	if view.Question.ID != "q3" {
		t.Errorf("quick advance should skip the answered q2, got %s", view.Question.ID)
	}
}

func TestSession_GoNextOnEmptyFilteredViewStays(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(questionnaire.ModeAdvanced, sampleQuestions())
	_, _ = f.svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: "qn-1", Position: 1})

	if err := f.svc.SetFilterEnabled(ctx, issue.LowConfidence, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items := f.svc.ListItems(ctx); len(items) != 0 {
		t.Fatalf("no question has low confidence, got %+v", items)
	}

	_ = f.svc.GoNext(ctx)

	view, err := f.svc.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.InReview || view.Position != 1 {
		t.Errorf("next over an empty filtered list should not move, got %+v", view)
	}
	if !view.IsAtEnd {
		t.Error("an empty filtered list counts as the end")
	}
}
