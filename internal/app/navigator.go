package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/assess/internal/core/navigation"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/secondary"
)

// QuestionNavigator owns the current position of a session and loads the
// question detail for every position change.
type QuestionNavigator struct {
	store     *QuestionStore
	gateway   secondary.AssessmentGateway
	notifier  secondary.Notifier
	positions secondary.PositionStore
	logger    *slog.Logger

	mu         sync.Mutex
	index      int
	generation uint64
}

// NewQuestionNavigator creates a navigator with injected dependencies.
// positions may be nil.
func NewQuestionNavigator(
	store *QuestionStore,
	gateway secondary.AssessmentGateway,
	notifier secondary.Notifier,
	positions secondary.PositionStore,
	logger *slog.Logger,
) *QuestionNavigator {
	return &QuestionNavigator{
		store:     store,
		gateway:   gateway,
		notifier:  notifier,
		positions: positions,
		logger:    logger,
	}
}

// Index returns the current zero-based index, or navigation.ReviewSentinel.
func (n *QuestionNavigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// InReview reports whether the session reached the review state.
func (n *QuestionNavigator) InReview() bool {
	return navigation.IsReview(n.Index())
}

// IsAtStart reports whether no visible question precedes the current one.
func (n *QuestionNavigator) IsAtStart() bool {
	return navigation.IsAtViewStart(n.Index(), n.store.ViewIndexes())
}

// IsAtEnd reports whether no visible question follows the current one.
func (n *QuestionNavigator) IsAtEnd() bool {
	return navigation.IsAtViewEnd(n.Index(), n.store.ViewIndexes())
}

// GoTo moves to a 1-based position, clamped into the question list.
func (n *QuestionNavigator) GoTo(ctx context.Context, position int) error {
	return n.SelectAt(ctx, navigation.ResolvePosition(position, n.store.Len(), false))
}

// GoPrevious moves to the previous visible question. It does nothing at the start.
func (n *QuestionNavigator) GoPrevious(ctx context.Context) error {
	step := navigation.PreviousInView(n.Index(), n.store.ViewIndexes())
	if !step.Moved {
		return nil
	}
	return n.SelectAt(ctx, step.Index)
}

// GoNext moves to the next visible question, or enters review after the last one.
func (n *QuestionNavigator) GoNext(ctx context.Context) error {
	step := navigation.NextInView(n.Index(), n.store.ViewIndexes())
	if !step.Moved {
		return nil
	}
	if step.Review {
		n.EnterReview()
		return nil
	}
	return n.SelectAt(ctx, step.Index)
}

// EnterReview switches to the review state. Pending detail fetches are dropped.
func (n *QuestionNavigator) EnterReview() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.index = navigation.ReviewSentinel
	n.generation++
}

// Reset returns to the first position without loading anything.
func (n *QuestionNavigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.index = 0
	n.generation++
}

// SelectAt moves to a zero-based index. The listed question is selected at
// once and replaced by its detail when the fetch completes, unless another
// move happened in the meantime.
func (n *QuestionNavigator) SelectAt(ctx context.Context, idx int) error {
	q, ok := n.store.QuestionAt(idx)
	if !ok {
		return fmt.Errorf("no question at position %d", idx+1)
	}

	n.mu.Lock()
	n.index = idx
	n.generation++
	gen := n.generation
	n.mu.Unlock()

	n.store.Select(q)
	n.savePosition(ctx, idx+1)

	scope := n.store.Scope()
	detail, err := n.gateway.GetQuestionDetail(ctx, scope.AssessmentID, q.ID)
	if err != nil {
		n.notifier.NotifyError(ctx, "load question", err)
		return &RemoteFailure{Op: "load question", Err: err}
	}
	if detail == nil {
		return fmt.Errorf("empty detail for question %s", q.ID)
	}
	// Keep the list position; the detail endpoint may not echo it.
	if detail.Index == 0 {
		detail.Index = q.Index
	}
	if err := questionnaire.ValidateQuestion(*detail); err != nil {
		return fmt.Errorf("invalid question %s: %w", q.ID, err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation {
		n.logger.Debug("dropping stale question detail", "question_id", q.ID, "generation", gen)
		return nil
	}
	n.store.Select(*detail)
	return nil
}

func (n *QuestionNavigator) savePosition(ctx context.Context, position int) {
	if n.positions == nil {
		return
	}
	scope := n.store.Scope()
	if err := n.positions.SavePosition(ctx, scope.AssessmentID, scope.QuestionnaireID, position); err != nil {
		n.logger.Warn("failed to save position", "questionnaire_id", scope.QuestionnaireID, "error", err)
	}
}
