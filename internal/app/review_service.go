package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/example/assess/internal/core/review"
	"github.com/example/assess/internal/core/sidebar"
	"github.com/example/assess/internal/ports/primary"
	"github.com/example/assess/internal/ports/secondary"
)

// ReviewStatusCalculator builds the end-of-questionnaire summary.
type ReviewStatusCalculator struct {
	store    *QuestionStore
	gateway  secondary.AssessmentGateway
	notifier secondary.Notifier
	logger   *slog.Logger
}

// NewReviewStatusCalculator creates the calculator with injected dependencies.
func NewReviewStatusCalculator(store *QuestionStore, gateway secondary.AssessmentGateway, notifier secondary.Notifier, logger *slog.Logger) *ReviewStatusCalculator {
	return &ReviewStatusCalculator{
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// Summary classifies completion and looks up the next questionnaire and the
// breadcrumb titles concurrently. Breadcrumbs are display-only, so a failure
// there is logged and the summary is returned without them.
func (r *ReviewStatusCalculator) Summary(ctx context.Context) (*primary.ReviewSummary, error) {
	scope := r.store.Scope()
	if scope.QuestionnaireID == "" {
		return nil, ErrNoSession
	}

	questions := r.store.Questions()
	answered := sidebar.AnsweredCount(questions)
	percent := sidebar.CompletionPercent(answered, len(questions))
	status := review.StatusFor(percent)

	summary := &primary.ReviewSummary{
		Status:   status,
		Percent:  percent,
		Answered: answered,
		Total:    len(questions),
		Config:   review.ConfigFor(status),
	}

	var next *secondary.NextQuestionnaire
	var path *secondary.PathInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := r.gateway.GetNextQuestionnaire(gctx, scope.AssessmentID, scope.QuestionnaireID)
		if err != nil {
			return err
		}
		next = res
		return nil
	})
	g.Go(func() error {
		res, err := r.gateway.GetPathInfo(gctx, scope.AssessmentID, scope.QuestionnaireID)
		if err != nil {
			r.logger.Warn("failed to load path info", "questionnaire_id", scope.QuestionnaireID, "error", err)
			return nil
		}
		path = res
		return nil
	})
	if err := g.Wait(); err != nil {
		r.notifier.NotifyError(ctx, "load next questionnaire", err)
		return nil, &RemoteFailure{Op: "load next questionnaire", Err: err}
	}

	if next.Found() {
		summary.HasNext = true
		summary.Next = &primary.NextTarget{
			QuestionnaireID: next.ID,
			QuestionIndex:   next.QuestionIndex,
		}
	}
	if path != nil {
		summary.Path = &primary.Breadcrumb{
			Space:         path.SpaceTitle,
			Assessment:    path.AssessmentTitle,
			Questionnaire: path.QuestionnaireTitle,
		}
	}
	return summary, nil
}
