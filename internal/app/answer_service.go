package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/assess/internal/core/answer"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/primary"
	"github.com/example/assess/internal/ports/secondary"
)

// Stepper advances the session after an answer.
type Stepper interface {
	GoNext(ctx context.Context) error
}

// AnswerOptions configures the submission policy.
type AnswerOptions struct {
	Mode              questionnaire.Mode
	DefaultConfidence int
	AutoNext          bool
}

// stagedAnswer is the advanced-mode answer being edited locally.
type stagedAnswer struct {
	questionID    string
	seq           uint64
	option        *questionnaire.Option
	notApplicable bool
	confidence    *int
}

// AnswerSubmissionService submits and approves answers for the current
// question and keeps the store in sync with the server's echo.
type AnswerSubmissionService struct {
	store    *QuestionStore
	stepper  Stepper
	gateway  secondary.AssessmentGateway
	notifier secondary.Notifier
	identity secondary.IdentityProvider
	activity secondary.ActivityLog
	logger   *slog.Logger
	now      func() time.Time

	// mu serializes submissions and approvals.
	mu   sync.Mutex
	opts AnswerOptions

	stageMu sync.Mutex
	staged  stagedAnswer

	submitting atomic.Bool
	approving  atomic.Bool
}

// NewAnswerSubmissionService creates the service with injected dependencies.
// activity may be nil.
func NewAnswerSubmissionService(
	store *QuestionStore,
	stepper Stepper,
	gateway secondary.AssessmentGateway,
	notifier secondary.Notifier,
	identity secondary.IdentityProvider,
	activity secondary.ActivityLog,
	logger *slog.Logger,
	opts AnswerOptions,
) *AnswerSubmissionService {
	return &AnswerSubmissionService{
		store:    store,
		stepper:  stepper,
		gateway:  gateway,
		notifier: notifier,
		identity: identity,
		activity: activity,
		logger:   logger,
		now:      time.Now,
		opts:     opts,
	}
}

// Mode returns the submission policy in effect.
func (s *AnswerSubmissionService) Mode() questionnaire.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Mode
}

// SetAutoNext toggles advancing after an explicit submit.
func (s *AnswerSubmissionService) SetAutoNext(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.AutoNext = enabled
}

// AutoNext reports whether an explicit submit advances the session.
func (s *AnswerSubmissionService) AutoNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.AutoNext
}

// IsSubmitting reports whether a submission is in flight.
func (s *AnswerSubmissionService) IsSubmitting() bool {
	return s.submitting.Load()
}

// IsApproving reports whether an approval is in flight.
func (s *AnswerSubmissionService) IsApproving() bool {
	return s.approving.Load()
}

// Submit sends an answer for the current question.
func (s *AnswerSubmissionService) Submit(ctx context.Context, req primary.SubmitAnswerRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.submitLocked(ctx, req)
	return err
}

func (s *AnswerSubmissionService) submitLocked(ctx context.Context, req primary.SubmitAnswerRequest) (*questionnaire.Answer, error) {
	q, ok := s.store.Selected()
	if !ok || q.ID == "" {
		return nil, ErrNoSelectedQuestion
	}

	perms, err := s.identity.Permissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}

	// Resolve the option against the question so the stored copy carries its title.
	var option *questionnaire.Option
	optionKnown := false
	if req.Value != nil && req.Value.ID != "" {
		if known, found := q.OptionByID(req.Value.ID); found {
			option = &known
			optionKnown = true
		}
	}

	guard := answer.CanSubmit(answer.SubmitContext{
		QuestionID:         q.ID,
		CanAnswer:          perms.AnswerQuestion,
		OptionID:           optionID(req.Value),
		OptionIsKnown:      optionKnown,
		NotApplicable:      req.NotApplicable,
		MayNotBeApplicable: q.MayNotBeApplicable,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	attach := answer.ShouldAttachConfidence(option, req.SubmitOnAnswerSelection, req.NotApplicable)
	scope := s.store.Scope()
	request := secondary.SubmitAnswerRequest{
		AssessmentID:    scope.AssessmentID,
		QuestionnaireID: scope.QuestionnaireID,
		QuestionID:      q.ID,
		IsNotApplicable: req.NotApplicable,
	}
	if option != nil {
		id := option.ID
		request.AnswerOptionID = &id
	}
	if attach && req.ConfidenceLevelID != nil {
		lvl := *req.ConfidenceLevelID
		request.ConfidenceLevelID = &lvl
	}

	s.submitting.Store(true)
	defer s.submitting.Store(false)

	result, err := s.gateway.SubmitAnswer(ctx, request)
	if err != nil {
		s.notifier.NotifyError(ctx, "submit answer", err)
		return nil, &RemoteFailure{Op: "submit answer", Err: err}
	}
	if result == nil {
		result = &secondary.SubmitAnswerResult{}
	}

	merged := answer.Merge(result.Answer, answer.Local{
		Option:            option,
		NotApplicable:     req.NotApplicable,
		ConfidenceLevelID: req.ConfidenceLevelID,
		AttachConfidence:  attach,
	}, q.Answer)
	merged.ConfidenceLevel = answer.TitleConfidence(merged.ConfidenceLevel, s.store.ConfidenceLevels())

	counts := answer.NextCounts(q.Counts, result.Counts)

	issues, err := s.refreshIssues(ctx, perms, q, &merged)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateQuestion(q.ID, QuestionPatch{
		Answer: &merged,
		Counts: &counts,
		Issues: &issues,
	}); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	s.store.AppendHistory(questionnaire.HistoryEntry{
		CreatedBy:    user,
		Answer:       merged,
		CreationTime: s.now(),
	})

	action := secondary.ActionSubmit
	if merged.SelectedOption == nil && !merged.IsNotApplicable {
		action = secondary.ActionClear
	}
	s.record(ctx, scope, q.ID, action, &merged)

	s.logger.Debug("answer submitted",
		"question_id", q.ID,
		"option_id", optionID(merged.SelectedOption),
		"not_applicable", merged.IsNotApplicable,
	)
	return &merged, nil
}

// Approve approves the pending answer of the current question.
func (s *AnswerSubmissionService) Approve(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.store.Selected()
	if !ok || q.ID == "" {
		return ErrNoSelectedQuestion
	}

	perms, err := s.identity.Permissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve permissions: %w", err)
	}

	guard := answer.CanApprove(answer.ApproveContext{
		QuestionID: q.ID,
		CanApprove: perms.ApproveAnswer,
		HasAnswer:  answer.HasAnswer(q),
	})
	if err := guard.Error(); err != nil {
		return err
	}

	s.approving.Store(true)
	defer s.approving.Store(false)

	scope := s.store.Scope()
	if err := s.gateway.ApproveAnswer(ctx, scope.AssessmentID, q.ID); err != nil {
		s.notifier.NotifyError(ctx, "approve answer", err)
		return &RemoteFailure{Op: "approve answer", Err: err}
	}

	approved := q.Answer.Clone()
	approved.Approved = true

	issues, err := s.refreshIssues(ctx, perms, q, approved)
	if err != nil {
		return err
	}

	if err := s.store.UpdateQuestion(q.ID, QuestionPatch{Answer: approved, Issues: &issues}); err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	s.record(ctx, scope, q.ID, secondary.ActionApprove, approved)
	return nil
}

// refreshIssues refetches issue flags when the viewer may see them.
func (s *AnswerSubmissionService) refreshIssues(ctx context.Context, perms questionnaire.Permissions, q questionnaire.Question, current *questionnaire.Answer) (questionnaire.Issues, error) {
	var fetched *questionnaire.Issues
	if perms.ViewDashboard {
		scope := s.store.Scope()
		issues, err := s.gateway.GetQuestionIssues(ctx, scope.AssessmentID, q.ID)
		if err != nil {
			s.notifier.NotifyError(ctx, "refresh issues", err)
			return questionnaire.Issues{}, &RemoteFailure{Op: "refresh issues", Err: err}
		}
		fetched = issues
	}
	return answer.RefreshIssues(q.Issues, fetched, current), nil
}

func (s *AnswerSubmissionService) record(ctx context.Context, scope Scope, questionID, action string, a *questionnaire.Answer) {
	if s.activity == nil {
		return
	}
	rec := &secondary.ActivityRecord{
		AssessmentID:    scope.AssessmentID,
		QuestionnaireID: scope.QuestionnaireID,
		QuestionID:      questionID,
		Action:          action,
	}
	if a != nil {
		rec.OptionID = optionID(a.SelectedOption)
		rec.NotApplicable = a.IsNotApplicable
		if a.ConfidenceLevel != nil {
			rec.ConfidenceLevelID = a.ConfidenceLevel.ID
		}
	}
	if err := s.activity.Record(ctx, rec); err != nil {
		s.logger.Warn("failed to record activity", "question_id", questionID, "action", action, "error", err)
	}
}

// SelectOption applies the mode policy to an option choice.
//
// Quick mode submits at once and advances: choosing the stored option again
// clears the answer, any other option is submitted with the default
// confidence. Advanced mode only toggles the staged option.
func (s *AnswerSubmissionService) SelectOption(ctx context.Context, option questionnaire.Option) error {
	if s.Mode() == questionnaire.ModeAdvanced {
		return s.toggleStagedOption(option)
	}

	s.mu.Lock()
	q, ok := s.store.Selected()
	if !ok {
		s.mu.Unlock()
		return ErrNoSelectedQuestion
	}

	req := primary.SubmitAnswerRequest{SubmitOnAnswerSelection: true}
	if q.SelectedOptionID() != option.ID {
		confidence := s.opts.DefaultConfidence
		opt := option
		req.Value = &opt
		req.ConfidenceLevelID = &confidence
	}
	_, err := s.submitLocked(ctx, req)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.stepper.GoNext(ctx)
}

// Staged returns the staged answer of the current question.
func (s *AnswerSubmissionService) Staged(ctx context.Context) (*primary.StagedAnswer, error) {
	q, seq, ok := s.store.Selection()
	if !ok {
		return nil, ErrNoSelectedQuestion
	}
	perms, err := s.identity.Permissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}

	st := s.currentStaged(q, seq)
	guard := s.stagedGuard(st, perms)

	out := &primary.StagedAnswer{
		QuestionID:    st.questionID,
		NotApplicable: st.notApplicable,
		CanSubmit:     guard.Allowed,
		Reason:        guard.Reason,
	}
	if st.option != nil {
		opt := *st.option
		out.Option = &opt
	}
	if st.confidence != nil {
		lvl := *st.confidence
		out.ConfidenceLevelID = &lvl
	}
	return out, nil
}

// CanSubmitStaged evaluates whether the staged answer can be submitted.
func (s *AnswerSubmissionService) CanSubmitStaged(ctx context.Context) answer.GuardResult {
	q, seq, ok := s.store.Selection()
	if !ok {
		return answer.GuardResult{Allowed: false, Reason: ErrNoSelectedQuestion.Error()}
	}
	perms, err := s.identity.Permissions(ctx)
	if err != nil {
		return answer.GuardResult{Allowed: false, Reason: err.Error()}
	}
	return s.stagedGuard(s.currentStaged(q, seq), perms)
}

func (s *AnswerSubmissionService) stagedGuard(st stagedAnswer, perms questionnaire.Permissions) answer.GuardResult {
	return answer.CanSubmitStaged(answer.StagedContext{
		QuestionID:     st.questionID,
		CanAnswer:      perms.AnswerQuestion,
		OptionSelected: st.option != nil,
		ConfidenceSet:  st.confidence != nil,
		NotApplicable:  st.notApplicable,
	})
}

// StageConfidence sets the staged confidence level. Zero clears it.
func (s *AnswerSubmissionService) StageConfidence(levelID int) error {
	q, seq, ok := s.store.Selection()
	if !ok {
		return ErrNoSelectedQuestion
	}
	if levelID < 0 {
		return fmt.Errorf("invalid confidence level %d", levelID)
	}

	s.stageMu.Lock()
	defer s.stageMu.Unlock()
	s.syncStagedLocked(q, seq)
	if levelID == 0 {
		s.staged.confidence = nil
		return nil
	}
	s.staged.confidence = &levelID
	return nil
}

// StageNotApplicable marks the staged answer not applicable, dropping any
// staged option.
func (s *AnswerSubmissionService) StageNotApplicable(notApplicable bool) error {
	q, seq, ok := s.store.Selection()
	if !ok {
		return ErrNoSelectedQuestion
	}
	if notApplicable && !q.MayNotBeApplicable {
		return fmt.Errorf("question %s cannot be marked not applicable", q.ID)
	}

	s.stageMu.Lock()
	defer s.stageMu.Unlock()
	s.syncStagedLocked(q, seq)
	s.staged.notApplicable = notApplicable
	if notApplicable {
		s.staged.option = nil
	}
	return nil
}

// SubmitStaged submits the staged answer and advances when AutoNext is on.
func (s *AnswerSubmissionService) SubmitStaged(ctx context.Context) error {
	if guard := s.CanSubmitStaged(ctx); !guard.Allowed {
		return guard.Error()
	}

	s.mu.Lock()
	q, seq, ok := s.store.Selection()
	if !ok {
		s.mu.Unlock()
		return ErrNoSelectedQuestion
	}
	st := s.currentStaged(q, seq)

	req := primary.SubmitAnswerRequest{
		NotApplicable:     st.notApplicable,
		ConfidenceLevelID: st.confidence,
	}
	if !st.notApplicable && st.option != nil {
		opt := *st.option
		req.Value = &opt
	}

	merged, err := s.submitLocked(ctx, req)
	autoNext := s.opts.AutoNext
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.stageMu.Lock()
	s.staged = stagedFrom(q.ID, seq, merged)
	s.stageMu.Unlock()

	if autoNext {
		return s.stepper.GoNext(ctx)
	}
	return nil
}

func (s *AnswerSubmissionService) toggleStagedOption(option questionnaire.Option) error {
	q, seq, ok := s.store.Selection()
	if !ok {
		return ErrNoSelectedQuestion
	}
	known, found := q.OptionByID(option.ID)
	if !found {
		return fmt.Errorf("option %s does not belong to question %s", option.ID, q.ID)
	}

	s.stageMu.Lock()
	defer s.stageMu.Unlock()
	s.syncStagedLocked(q, seq)
	s.staged.notApplicable = false
	if s.staged.option != nil && s.staged.option.ID == known.ID {
		s.staged.option = nil
		return nil
	}
	s.staged.option = &known
	return nil
}

// currentStaged returns a copy of the staged answer for q.
func (s *AnswerSubmissionService) currentStaged(q questionnaire.Question, seq uint64) stagedAnswer {
	s.stageMu.Lock()
	defer s.stageMu.Unlock()
	s.syncStagedLocked(q, seq)
	return s.staged
}

// syncStagedLocked restarts staging from the stored answer whenever a
// question was selected since the last edit.
func (s *AnswerSubmissionService) syncStagedLocked(q questionnaire.Question, seq uint64) {
	if s.staged.questionID == q.ID && s.staged.seq == seq {
		return
	}
	s.staged = stagedFrom(q.ID, seq, q.Answer)
}

func stagedFrom(questionID string, seq uint64, a *questionnaire.Answer) stagedAnswer {
	st := stagedAnswer{questionID: questionID, seq: seq}
	if a == nil {
		return st
	}
	if a.SelectedOption != nil {
		opt := *a.SelectedOption
		st.option = &opt
	}
	if a.ConfidenceLevel != nil {
		lvl := a.ConfidenceLevel.ID
		st.confidence = &lvl
	}
	st.notApplicable = a.IsNotApplicable
	return st
}

func optionID(o *questionnaire.Option) string {
	if o == nil {
		return ""
	}
	return o.ID
}
