package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/core/sidebar"
	"github.com/example/assess/internal/ports/primary"
)

// Positioner moves the session to a list position.
type Positioner interface {
	Index() int
	InReview() bool
	SelectAt(ctx context.Context, idx int) error
}

// SidebarProjector keeps the side list state: issue filters, chip
// visibility and the open flag.
type SidebarProjector struct {
	store     *QuestionStore
	navigator Positioner
	labels    issue.Labeler
	logger    *slog.Logger

	mu        sync.Mutex
	open      bool
	showChips bool
}

// NewSidebarProjector creates a projector. Chips start visible in advanced mode.
func NewSidebarProjector(store *QuestionStore, navigator Positioner, labels issue.Labeler, logger *slog.Logger, mode questionnaire.Mode) *SidebarProjector {
	return &SidebarProjector{
		store:     store,
		navigator: navigator,
		labels:    labels,
		logger:    logger,
		open:      true,
		showChips: mode == questionnaire.ModeAdvanced,
	}
}

// Reset clears the filters.
func (p *SidebarProjector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.SetFilter(issue.NewFilterSet())
}

// ActiveFilters returns the enabled issue filters.
func (p *SidebarProjector) ActiveFilters() issue.FilterSet {
	return p.store.Filter()
}

// SetFilterEnabled toggles one issue filter. When the current question is
// filtered out, the session moves to the first visible question.
func (p *SidebarProjector) SetFilterEnabled(ctx context.Context, id issue.ID, enabled bool) error {
	if _, err := issue.ParseID(string(id)); err != nil {
		return err
	}

	p.mu.Lock()
	current := p.store.Filter()
	next := current.Set(id, enabled)
	if next.Equal(current) {
		p.mu.Unlock()
		return nil
	}
	p.store.SetFilter(next)
	p.mu.Unlock()

	if p.navigator.InReview() {
		return nil
	}
	filtered := p.store.FilteredQuestions()
	if len(filtered) == 0 {
		return nil
	}
	if q, ok := p.store.Selected(); ok && sidebar.Contains(filtered, q) {
		return nil
	}

	view := p.store.ViewIndexes()
	if len(view) == 0 {
		return nil
	}
	p.logger.Debug("current question filtered out", "filter", string(id), "moving_to", view[0]+1)
	return p.navigator.SelectAt(ctx, view[0])
}

// FilterOptions returns the filter checkboxes.
func (p *SidebarProjector) FilterOptions() []issue.FilterOption {
	return issue.FilterOptions(p.ActiveFilters(), p.labels)
}

// ToggleIssueChips flips chip visibility and returns the new state.
func (p *SidebarProjector) ToggleIssueChips() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showChips = !p.showChips
	return p.showChips
}

// ShowIssueChips reports whether chips are visible.
func (p *SidebarProjector) ShowIssueChips() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.showChips
}

// ToggleOpen flips the side list and returns the new state.
func (p *SidebarProjector) ToggleOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
	return p.open
}

// IsOpen reports whether the side list is shown.
func (p *SidebarProjector) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Chips returns the issue chips of a question.
func (p *SidebarProjector) Chips(q questionnaire.Question) []issue.Chip {
	return issue.Chips(q.Issues, p.labels)
}

// ListItems returns the rows of the side list.
func (p *SidebarProjector) ListItems() []primary.ListItem {
	all := p.store.Questions()
	filtered := p.store.FilteredQuestions()

	var active *questionnaire.Question
	if q, ok := p.store.Selected(); ok {
		active = &q
	}

	showChips := p.ShowIssueChips()
	items := sidebar.ListItems(all, filtered, active, p.navigator.Index())
	out := make([]primary.ListItem, len(items))
	for i, it := range items {
		out[i] = primary.ListItem{
			Key:    it.Key,
			Idx:    it.Idx,
			Index:  it.Index,
			Title:  it.Title,
			Active: it.Active,
		}
		if showChips {
			out[i].Chips = issue.Chips(it.Issues, p.labels)
		}
	}
	return out
}

// Completion returns the answered count and completion percentage.
func (p *SidebarProjector) Completion() primary.Completion {
	all := p.store.Questions()
	answered := sidebar.AnsweredCount(all)
	return primary.Completion{
		Answered: answered,
		Total:    len(all),
		Percent:  sidebar.CompletionPercent(answered, len(all)),
	}
}

// SelectItem moves to a list position. Selecting the current one does nothing.
func (p *SidebarProjector) SelectItem(ctx context.Context, idx int) error {
	if idx == p.navigator.Index() {
		return nil
	}
	return p.navigator.SelectAt(ctx, idx)
}
