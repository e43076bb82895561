package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/assess/internal/core/answer"
	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/primary"
	"github.com/example/assess/internal/ports/secondary"
)

// DefaultPageSize is the number of questions fetched per page.
const DefaultPageSize = 50

// SessionConfig holds the session settings resolved from configuration.
type SessionConfig struct {
	AssessmentID      string
	Mode              questionnaire.Mode
	PageSize          int
	DefaultConfidence int
	AutoNext          bool
}

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	cfg       SessionConfig
	store     *QuestionStore
	navigator *QuestionNavigator
	answers   *AnswerSubmissionService
	sidebar   *SidebarProjector
	review    *ReviewStatusCalculator
	gateway   secondary.AssessmentGateway
	notifier  secondary.Notifier
	identity  secondary.IdentityProvider
	positions secondary.PositionStore
	activity  secondary.ActivityLog
	logger    *slog.Logger
}

var _ primary.SessionService = (*SessionServiceImpl)(nil)

// NewSessionService wires the session collaborators around one store.
// positions and activity may be nil.
func NewSessionService(
	cfg SessionConfig,
	gateway secondary.AssessmentGateway,
	notifier secondary.Notifier,
	identity secondary.IdentityProvider,
	positions secondary.PositionStore,
	activity secondary.ActivityLog,
	labels issue.Labeler,
	logger *slog.Logger,
) *SessionServiceImpl {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Mode == "" {
		cfg.Mode = questionnaire.ModeQuick
	}

	store := NewQuestionStore()
	navigator := NewQuestionNavigator(store, gateway, notifier, positions, logger)
	answers := NewAnswerSubmissionService(store, navigator, gateway, notifier, identity, activity, logger, AnswerOptions{
		Mode:              cfg.Mode,
		DefaultConfidence: cfg.DefaultConfidence,
		AutoNext:          cfg.AutoNext,
	})

	return &SessionServiceImpl{
		cfg:       cfg,
		store:     store,
		navigator: navigator,
		answers:   answers,
		sidebar:   NewSidebarProjector(store, navigator, labels, logger, cfg.Mode),
		review:    NewReviewStatusCalculator(store, gateway, notifier, logger),
		gateway:   gateway,
		notifier:  notifier,
		identity:  identity,
		positions: positions,
		activity:  activity,
		logger:    logger,
	}
}

// Start loads a questionnaire page by page, validates it, loads the
// confidence catalogue and moves to the starting position.
func (s *SessionServiceImpl) Start(ctx context.Context, req primary.StartSessionRequest) (*primary.SessionInfo, error) {
	if req.QuestionnaireID == "" {
		return nil, fmt.Errorf("questionnaire id is required")
	}
	if s.cfg.AssessmentID == "" {
		return nil, fmt.Errorf("assessment id is required")
	}

	questions, err := s.loadQuestions(ctx, req.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if err := questionnaire.ValidateQuestions(questions); err != nil {
		return nil, fmt.Errorf("invalid questionnaire %s: %w", req.QuestionnaireID, err)
	}

	levels, err := s.gateway.GetConfidenceLevels(ctx)
	if err != nil {
		s.notifier.NotifyError(ctx, "load confidence levels", err)
		return nil, &RemoteFailure{Op: "load confidence levels", Err: err}
	}

	s.store.Reset()
	s.store.SetScope(Scope{AssessmentID: s.cfg.AssessmentID, QuestionnaireID: req.QuestionnaireID})
	s.store.Load(questions)
	s.store.SetConfidenceLevels(levels)
	s.sidebar.Reset()
	s.navigator.Reset()

	s.logger.Info("questionnaire loaded",
		"assessment_id", s.cfg.AssessmentID,
		"questionnaire_id", req.QuestionnaireID,
		"questions", len(questions),
	)

	info := &primary.SessionInfo{
		AssessmentID:    s.cfg.AssessmentID,
		QuestionnaireID: req.QuestionnaireID,
		Mode:            s.cfg.Mode,
		Total:           len(questions),
	}
	if len(questions) == 0 {
		return info, nil
	}

	position := s.startPosition(ctx, req)
	if err := s.navigator.GoTo(ctx, position); err != nil {
		return nil, err
	}
	info.Position = s.navigator.Index() + 1
	return info, nil
}

func (s *SessionServiceImpl) loadQuestions(ctx context.Context, questionnaireID string) ([]questionnaire.Question, error) {
	var all []questionnaire.Question
	for page := 0; ; page++ {
		res, err := s.gateway.GetQuestionnaireAnswers(ctx, s.cfg.AssessmentID, questionnaireID, page, s.cfg.PageSize)
		if err != nil {
			s.notifier.NotifyError(ctx, "load questions", err)
			return nil, &RemoteFailure{Op: "load questions", Err: err}
		}
		all = append(all, res.Items...)
		if len(res.Items) < s.cfg.PageSize || (res.Total > 0 && len(all) >= res.Total) {
			return all, nil
		}
	}
}

func (s *SessionServiceImpl) startPosition(ctx context.Context, req primary.StartSessionRequest) int {
	if req.Position > 0 || s.positions == nil {
		return req.Position
	}
	saved, ok, err := s.positions.LoadPosition(ctx, s.cfg.AssessmentID, req.QuestionnaireID)
	if err != nil {
		s.logger.Warn("failed to load saved position", "questionnaire_id", req.QuestionnaireID, "error", err)
		return 1
	}
	if !ok {
		return 1
	}
	return saved
}

// Close discards the session state.
func (s *SessionServiceImpl) Close(ctx context.Context) {
	s.store.Reset()
	s.sidebar.Reset()
	s.navigator.Reset()
}

// Current returns the current question and navigation flags.
func (s *SessionServiceImpl) Current(ctx context.Context) (*primary.QuestionView, error) {
	total := s.store.Len()
	if s.navigator.InReview() {
		return &primary.QuestionView{
			Total:     total,
			InReview:  true,
			IsAtStart: true,
			IsAtEnd:   true,
		}, nil
	}

	q, ok := s.store.Selected()
	if !ok {
		return nil, ErrNoSelectedQuestion
	}

	perms, err := s.identity.Permissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}

	view := &primary.QuestionView{
		Question:   q,
		Position:   s.navigator.Index() + 1,
		Total:      total,
		IsAtStart:  s.navigator.IsAtStart(),
		IsAtEnd:    s.navigator.IsAtEnd(),
		Submitting: s.answers.IsSubmitting(),
		Approving:  s.answers.IsApproving(),
		CanApprove: perms.ApproveAnswer && q.Issues.HasUnapprovedAnswer && answer.HasAnswer(q),
	}
	if s.sidebar.ShowIssueChips() {
		view.Chips = s.sidebar.Chips(q)
	}
	return view, nil
}

// Submit sends an answer for the current question.
func (s *SessionServiceImpl) Submit(ctx context.Context, req primary.SubmitAnswerRequest) error {
	return s.answers.Submit(ctx, req)
}

// SelectOption applies the mode policy to an option of the current question.
func (s *SessionServiceImpl) SelectOption(ctx context.Context, optionID string) error {
	q, ok := s.store.Selected()
	if !ok {
		return ErrNoSelectedQuestion
	}
	option, found := q.OptionByID(optionID)
	if !found {
		return fmt.Errorf("option %s does not belong to question %s", optionID, q.ID)
	}
	return s.answers.SelectOption(ctx, option)
}

// StageConfidence sets the staged confidence level.
func (s *SessionServiceImpl) StageConfidence(ctx context.Context, levelID int) error {
	if err := s.requireAdvanced(); err != nil {
		return err
	}
	return s.answers.StageConfidence(levelID)
}

// StageNotApplicable marks the staged answer not applicable.
func (s *SessionServiceImpl) StageNotApplicable(ctx context.Context, notApplicable bool) error {
	if err := s.requireAdvanced(); err != nil {
		return err
	}
	return s.answers.StageNotApplicable(notApplicable)
}

// Staged returns the staged answer.
func (s *SessionServiceImpl) Staged(ctx context.Context) (*primary.StagedAnswer, error) {
	return s.answers.Staged(ctx)
}

// SubmitStaged submits the staged answer.
func (s *SessionServiceImpl) SubmitStaged(ctx context.Context) error {
	if err := s.requireAdvanced(); err != nil {
		return err
	}
	return s.answers.SubmitStaged(ctx)
}

func (s *SessionServiceImpl) requireAdvanced() error {
	if s.answers.Mode() != questionnaire.ModeAdvanced {
		return fmt.Errorf("staging is only available in advanced mode")
	}
	return nil
}

// Approve approves the current answer. Quick mode and AutoNext advance afterwards.
func (s *SessionServiceImpl) Approve(ctx context.Context) error {
	if err := s.answers.Approve(ctx); err != nil {
		return err
	}
	if s.answers.Mode() == questionnaire.ModeQuick || s.answers.AutoNext() {
		return s.navigator.GoNext(ctx)
	}
	return nil
}

// SetAutoNext toggles advancing after an explicit submit.
func (s *SessionServiceImpl) SetAutoNext(ctx context.Context, enabled bool) {
	s.answers.SetAutoNext(enabled)
}

// GoPrevious moves one question back.
func (s *SessionServiceImpl) GoPrevious(ctx context.Context) error {
	return s.navigator.GoPrevious(ctx)
}

// GoNext moves one question forward.
func (s *SessionServiceImpl) GoNext(ctx context.Context) error {
	return s.navigator.GoNext(ctx)
}

// GoTo moves to a 1-based position.
func (s *SessionServiceImpl) GoTo(ctx context.Context, position int) error {
	if s.store.Len() == 0 {
		return ErrNoSession
	}
	return s.navigator.GoTo(ctx, position)
}

// ListItems returns the side list rows.
func (s *SessionServiceImpl) ListItems(ctx context.Context) []primary.ListItem {
	return s.sidebar.ListItems()
}

// Completion returns answered counts.
func (s *SessionServiceImpl) Completion(ctx context.Context) primary.Completion {
	return s.sidebar.Completion()
}

// FilterOptions returns the issue filters.
func (s *SessionServiceImpl) FilterOptions(ctx context.Context) []issue.FilterOption {
	return s.sidebar.FilterOptions()
}

// SetFilterEnabled toggles an issue filter.
func (s *SessionServiceImpl) SetFilterEnabled(ctx context.Context, id issue.ID, enabled bool) error {
	return s.sidebar.SetFilterEnabled(ctx, id, enabled)
}

// ToggleIssueChips flips chip visibility.
func (s *SessionServiceImpl) ToggleIssueChips(ctx context.Context) bool {
	return s.sidebar.ToggleIssueChips()
}

// ToggleSidebar flips the side list.
func (s *SessionServiceImpl) ToggleSidebar(ctx context.Context) bool {
	return s.sidebar.ToggleOpen()
}

// History returns the session answer history.
func (s *SessionServiceImpl) History(ctx context.Context) []questionnaire.HistoryEntry {
	return s.store.History()
}

// ConfidenceLevels returns the confidence level catalogue.
func (s *SessionServiceImpl) ConfidenceLevels(ctx context.Context) []questionnaire.ConfidenceLevel {
	return s.store.ConfidenceLevels()
}

// ReviewSummary builds the end-of-questionnaire summary.
func (s *SessionServiceImpl) ReviewSummary(ctx context.Context) (*primary.ReviewSummary, error) {
	return s.review.Summary(ctx)
}

// Activity returns journal entries for the current questionnaire, newest first.
func (s *SessionServiceImpl) Activity(ctx context.Context, limit int) ([]*primary.ActivityEntry, error) {
	if s.activity == nil {
		return nil, nil
	}
	scope := s.store.Scope()
	records, err := s.activity.List(ctx, secondary.ActivityFilters{
		AssessmentID:    scope.AssessmentID,
		QuestionnaireID: scope.QuestionnaireID,
		Limit:           limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = recordToActivityEntry(r)
	}
	return entries, nil
}

func recordToActivityEntry(r *secondary.ActivityRecord) *primary.ActivityEntry {
	return &primary.ActivityEntry{
		ID:                r.ID,
		QuestionID:        r.QuestionID,
		Action:            r.Action,
		ActorID:           r.ActorID,
		OptionID:          r.OptionID,
		ConfidenceLevelID: r.ConfidenceLevelID,
		NotApplicable:     r.NotApplicable,
		CreatedAt:         r.CreatedAt,
	}
}

