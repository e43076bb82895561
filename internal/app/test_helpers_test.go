package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

var _ secondary.AssessmentGateway = (*mockGateway)(nil)

// mockGateway implements secondary.AssessmentGateway for testing.
type mockGateway struct {
	mu sync.Mutex

	questions []questionnaire.Question
	details   map[string]questionnaire.Question
	levels    []questionnaire.ConfidenceLevel

	submitResult *secondary.SubmitAnswerResult
	issues       *questionnaire.Issues
	next         *secondary.NextQuestionnaire
	path         *secondary.PathInfo

	submitErr  error
	approveErr error
	issuesErr  error
	detailErr  error
	pageErr    error
	levelsErr  error
	nextErr    error
	pathErr    error

	// onDetail runs before a detail is returned, e.g. to simulate a user
	// moving on while the fetch is in flight.
	onDetail func(questionID string)

	submitRequests []secondary.SubmitAnswerRequest
	approveCalls   []string
	issuesCalls    []string
	detailCalls    []string
	pageCalls      []int
}

func newMockGateway(questions []questionnaire.Question) *mockGateway {
	details := make(map[string]questionnaire.Question, len(questions))
	for _, q := range questions {
		details[q.ID] = q.Clone()
	}
	return &mockGateway{
		questions: questionnaire.CloneAll(questions),
		details:   details,
		levels: []questionnaire.ConfidenceLevel{
			{ID: 1, Title: "Completely unsure"},
			{ID: 2, Title: "Fairly unsure"},
			{ID: 3, Title: "Somewhat sure"},
			{ID: 4, Title: "Fairly sure"},
			{ID: 5, Title: "Completely sure"},
		},
		next: &secondary.NextQuestionnaire{Status: secondary.NextNotFound},
	}
}

func (m *mockGateway) SubmitAnswer(ctx context.Context, req secondary.SubmitAnswerRequest) (*secondary.SubmitAnswerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitRequests = append(m.submitRequests, req)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitResult, nil
}

func (m *mockGateway) ApproveAnswer(ctx context.Context, assessmentID, questionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approveCalls = append(m.approveCalls, questionID)
	return m.approveErr
}

func (m *mockGateway) GetQuestionIssues(ctx context.Context, assessmentID, questionID string) (*questionnaire.Issues, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issuesCalls = append(m.issuesCalls, questionID)
	if m.issuesErr != nil {
		return nil, m.issuesErr
	}
	if m.issues == nil {
		return nil, nil
	}
	issues := *m.issues
	return &issues, nil
}

func (m *mockGateway) GetQuestionDetail(ctx context.Context, assessmentID, questionID string) (*questionnaire.Question, error) {
	m.mu.Lock()
	m.detailCalls = append(m.detailCalls, questionID)
	hook := m.onDetail
	err := m.detailErr
	q, ok := m.details[questionID]
	m.mu.Unlock()

	if hook != nil {
		hook(questionID)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("question not found")
	}
	c := q.Clone()
	return &c, nil
}

func (m *mockGateway) GetQuestionnaireAnswers(ctx context.Context, assessmentID, questionnaireID string, page, size int) (*secondary.QuestionPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCalls = append(m.pageCalls, page)
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	start := page * size
	if start > len(m.questions) {
		start = len(m.questions)
	}
	end := start + size
	if end > len(m.questions) {
		end = len(m.questions)
	}
	return &secondary.QuestionPage{
		Items: questionnaire.CloneAll(m.questions[start:end]),
		Total: len(m.questions),
	}, nil
}

func (m *mockGateway) GetNextQuestionnaire(ctx context.Context, assessmentID, questionnaireID string) (*secondary.NextQuestionnaire, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	return m.next, nil
}

func (m *mockGateway) GetPathInfo(ctx context.Context, assessmentID, questionnaireID string) (*secondary.PathInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pathErr != nil {
		return nil, m.pathErr
	}
	return m.path, nil
}

func (m *mockGateway) GetConfidenceLevels(ctx context.Context) ([]questionnaire.ConfidenceLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.levelsErr != nil {
		return nil, m.levelsErr
	}
	return m.levels, nil
}

func (m *mockGateway) submitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submitRequests)
}

func (m *mockGateway) lastSubmit() secondary.SubmitAnswerRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitRequests[len(m.submitRequests)-1]
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	mu  sync.Mutex
	ops []string
}

func (m *mockNotifier) NotifyError(ctx context.Context, op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ops)
}

// mockIdentity implements secondary.IdentityProvider for testing.
type mockIdentity struct {
	user    questionnaire.User
	perms   questionnaire.Permissions
	userErr error
	permErr error
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{
		user:  questionnaire.User{ID: "u-1", DisplayName: "Ada"},
		perms: questionnaire.Permissions{ViewDashboard: true, AnswerQuestion: true, ApproveAnswer: true},
	}
}

func (m *mockIdentity) CurrentUser(ctx context.Context) (questionnaire.User, error) {
	return m.user, m.userErr
}

func (m *mockIdentity) Permissions(ctx context.Context) (questionnaire.Permissions, error) {
	return m.perms, m.permErr
}

// mockPositionStore implements secondary.PositionStore for testing.
type mockPositionStore struct {
	positions map[string]int
	saveErr   error
	loadErr   error
}

func newMockPositionStore() *mockPositionStore {
	return &mockPositionStore{positions: make(map[string]int)}
}

func (m *mockPositionStore) SavePosition(ctx context.Context, assessmentID, questionnaireID string, position int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.positions[assessmentID+"/"+questionnaireID] = position
	return nil
}

func (m *mockPositionStore) LoadPosition(ctx context.Context, assessmentID, questionnaireID string) (int, bool, error) {
	if m.loadErr != nil {
		return 0, false, m.loadErr
	}
	p, ok := m.positions[assessmentID+"/"+questionnaireID]
	return p, ok, nil
}

// mockActivityLog implements secondary.ActivityLog for testing.
type mockActivityLog struct {
	records   []*secondary.ActivityRecord
	recordErr error
}

func (m *mockActivityLog) Record(ctx context.Context, record *secondary.ActivityRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockActivityLog) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	var out []*secondary.ActivityRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.QuestionnaireID != "" && r.QuestionnaireID != filters.QuestionnaireID {
			continue
		}
		out = append(out, r)
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

// mockStepper implements Stepper for testing.
type mockStepper struct {
	calls int
	err   error
}

func (m *mockStepper) GoNext(ctx context.Context) error {
	m.calls++
	return m.err
}

// ============================================================================
// Fixtures
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func options(questionID string) []questionnaire.Option {
	return []questionnaire.Option{
		{ID: questionID + "-a", Index: 1, Title: "A"},
		{ID: questionID + "-b", Index: 2, Title: "B"},
	}
}

// sampleQuestions returns three questions: q1 unanswered, q2 answered
// without evidence, q3 unanswered and allowed to be not applicable.
func sampleQuestions() []questionnaire.Question {
	return []questionnaire.Question{
		{
			ID: "q1", Index: 1, Title: "First", Options: options("q1"),
			Issues: questionnaire.Issues{IsUnanswered: true},
		},
		{
			ID: "q2", Index: 2, Title: "Second", Options: options("q2"),
			Answer: &questionnaire.Answer{
				SelectedOption:  &questionnaire.Option{ID: "q2-b", Index: 2, Title: "B"},
				ConfidenceLevel: &questionnaire.ConfidenceLevel{ID: 2, Title: "Fairly unsure"},
			},
			Counts: questionnaire.Counts{AnswerHistories: 1},
			Issues: questionnaire.Issues{IsAnsweredWithoutEvidences: true, HasUnapprovedAnswer: true},
		},
		{
			ID: "q3", Index: 3, Title: "Third", Options: options("q3"), MayNotBeApplicable: true,
			Issues: questionnaire.Issues{IsUnanswered: true},
		},
	}
}

func loadedStore(questions []questionnaire.Question) *QuestionStore {
	store := NewQuestionStore()
	store.SetScope(Scope{AssessmentID: "as-1", QuestionnaireID: "qn-1"})
	store.Load(questions)
	return store
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
