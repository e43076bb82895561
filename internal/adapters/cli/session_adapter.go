package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/primary"
)

// SessionAdapter is a thin adapter that renders SessionService state to a terminal.
// It depends only on the SessionService interface, enabling easy testing with mocks.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
	copy    issue.Labeler
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
		copy:    ReviewCopy,
	}
}

// Start begins a session and prints where it landed.
func (a *SessionAdapter) Start(ctx context.Context, questionnaireID string, position int) (*primary.SessionInfo, error) {
	info, err := a.service.Start(ctx, primary.StartSessionRequest{
		QuestionnaireID: questionnaireID,
		Position:        position,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if info.Total == 0 {
		fmt.Fprintf(a.out, "Questionnaire %s has no questions.\n", info.QuestionnaireID)
		return info, nil
	}

	fmt.Fprintf(a.out, "✓ Questionnaire %s loaded (%d questions, %s mode)\n", info.QuestionnaireID, info.Total, info.Mode)
	fmt.Fprintf(a.out, "  Starting at question %d\n", info.Position)
	return info, nil
}

// ShowCurrent prints the current question, or the review screen at the end.
func (a *SessionAdapter) ShowCurrent(ctx context.Context) (*primary.QuestionView, error) {
	view, err := a.service.Current(ctx)
	if err != nil {
		return nil, err
	}
	if view.InReview {
		if _, err := a.ShowReview(ctx); err != nil {
			return view, err
		}
		return view, nil
	}

	q := view.Question
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, faintStyle.Sprintf("Question %d/%d", view.Position, view.Total))
	fmt.Fprintln(a.out, boldStyle.Sprintf("%d. %s", q.Index, q.Title))
	if q.Hint != "" {
		fmt.Fprintln(a.out, faintStyle.Sprintf("   %s", q.Hint))
	}
	if len(view.Chips) > 0 {
		fmt.Fprintf(a.out, "   %s\n", renderChips(view.Chips))
	}
	fmt.Fprintln(a.out)

	selected := q.SelectedOptionID()
	for i, opt := range q.Options {
		marker := "○"
		line := fmt.Sprintf("  %d) %s %s", i+1, marker, opt.Title)
		if opt.ID == selected {
			line = okStyle.Sprintf("  %d) ● %s", i+1, opt.Title)
		}
		fmt.Fprintln(a.out, line)
	}
	if q.MayNotBeApplicable {
		marker := "○"
		if q.Answer != nil && q.Answer.IsNotApplicable {
			marker = "●"
		}
		fmt.Fprintf(a.out, "     %s Not applicable\n", marker)
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Answer:     %s\n", describeAnswer(q.Answer))
	if q.Answer != nil && q.Answer.ConfidenceLevel != nil {
		fmt.Fprintf(a.out, "Confidence: %s\n", levelTitle(q.Answer.ConfidenceLevel))
	}
	fmt.Fprintf(a.out, "Evidence:   %d  Comments: %d  Changes: %d\n", q.Counts.Evidences, q.Counts.Comments, q.Counts.AnswerHistories)
	if view.CanApprove {
		fmt.Fprintln(a.out, toneStyle(issue.ToneTertiary).Sprint("Answer awaits approval (approve with 'a')"))
	}
	if view.IsAtEnd {
		fmt.Fprintln(a.out, faintStyle.Sprint("Last question. 'n' opens the review."))
	}

	return view, nil
}

// ShowStaged prints the advanced-mode staged answer.
func (a *SessionAdapter) ShowStaged(ctx context.Context) (*primary.StagedAnswer, error) {
	staged, err := a.service.Staged(ctx)
	if err != nil {
		return nil, err
	}

	option := "none"
	if staged.Option != nil {
		option = staged.Option.Title
	}
	if staged.NotApplicable {
		option = "not applicable"
	}
	confidence := "none"
	if staged.ConfidenceLevelID != nil {
		confidence = a.levelName(ctx, *staged.ConfidenceLevelID)
	}

	fmt.Fprintf(a.out, "Staged: %s, confidence %s\n", option, confidence)
	if staged.CanSubmit {
		fmt.Fprintln(a.out, okStyle.Sprint("Ready to submit ('s')"))
	} else {
		fmt.Fprintln(a.out, faintStyle.Sprintf("Submit disabled: %s", staged.Reason))
	}
	return staged, nil
}

// ShowList prints the side list with completion.
func (a *SessionAdapter) ShowList(ctx context.Context) []primary.ListItem {
	items := a.service.ListItems(ctx)
	completion := a.service.Completion(ctx)

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No questions match the active filters.")
		return items
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow("", boldStyle.Sprint("#"), boldStyle.Sprint("QUESTION"), boldStyle.Sprint("ISSUES"))
	for _, it := range items {
		marker := ""
		title := it.Title
		if it.Active {
			marker = "›"
			title = boldStyle.Sprint(title)
		}
		tbl.AddRow(marker, it.Index, title, renderChips(it.Chips))
	}
	fmt.Fprintln(a.out, tbl)
	fmt.Fprintf(a.out, "\nAnswered %d/%d (%d%%)\n", completion.Answered, completion.Total, completion.Percent)

	return items
}

// ShowFilters prints the issue filters with their state.
func (a *SessionAdapter) ShowFilters(ctx context.Context) []issue.FilterOption {
	opts := a.service.FilterOptions(ctx)

	tbl := uitable.New()
	for _, o := range opts {
		box := "[ ]"
		if o.Checked {
			box = okStyle.Sprint("[x]")
		}
		tbl.AddRow(box, o.Label, faintStyle.Sprint(string(o.ID)))
	}
	fmt.Fprintln(a.out, tbl)
	return opts
}

// ShowReview prints the end-of-questionnaire summary.
func (a *SessionAdapter) ShowReview(ctx context.Context) (*primary.ReviewSummary, error) {
	summary, err := a.service.ReviewSummary(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	if summary.Path != nil {
		crumbs := []string{}
		for _, c := range []string{summary.Path.Space, summary.Path.Assessment, summary.Path.Questionnaire} {
			if c != "" {
				crumbs = append(crumbs, c)
			}
		}
		if len(crumbs) > 0 {
			fmt.Fprintln(a.out, faintStyle.Sprint(strings.Join(crumbs, " › ")))
		}
	}

	for i, key := range summary.TextKeys() {
		block := summary.Config.Texts[i]
		fmt.Fprintln(a.out, textStyle(block.Color, block.Variant).Sprint(a.reviewText(key, summary)))
	}
	fmt.Fprintf(a.out, "\nCompletion: %d%% (%d/%d)\n", summary.Percent, summary.Answered, summary.Total)

	if summary.Next != nil {
		fmt.Fprintf(a.out, "Next questionnaire: %s (question %d)\n", summary.Next.QuestionnaireID, summary.Next.QuestionIndex)
		fmt.Fprintf(a.out, "  assess take %s --position %d\n", summary.Next.QuestionnaireID, summary.Next.QuestionIndex)
	}
	return summary, nil
}

func (a *SessionAdapter) reviewText(key string, summary *primary.ReviewSummary) string {
	text := a.copy.Label(key)
	if key == "review.answered_of" {
		return fmt.Sprintf(text, summary.Answered, summary.Total)
	}
	return text
}

// ShowHistory prints the answers changed during this session.
func (a *SessionAdapter) ShowHistory(ctx context.Context) []questionnaire.HistoryEntry {
	history := a.service.History(ctx)
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No answers changed in this session.")
		return history
	}

	tbl := uitable.New()
	tbl.AddRow(boldStyle.Sprint("WHEN"), boldStyle.Sprint("WHO"), boldStyle.Sprint("ANSWER"), boldStyle.Sprint("CONFIDENCE"))
	for _, h := range history {
		ans := h.Answer
		tbl.AddRow(h.CreationTime.Format("15:04:05"), h.CreatedBy.DisplayName, describeAnswer(&ans), levelTitle(ans.ConfidenceLevel))
	}
	fmt.Fprintln(a.out, tbl)
	return history
}

// ShowActivity prints the persisted answer journal of this questionnaire.
func (a *SessionAdapter) ShowActivity(ctx context.Context, limit int) ([]*primary.ActivityEntry, error) {
	entries, err := a.service.Activity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded.")
		return entries, nil
	}

	tbl := uitable.New()
	tbl.AddRow(boldStyle.Sprint("WHEN"), boldStyle.Sprint("ACTION"), boldStyle.Sprint("QUESTION"), boldStyle.Sprint("OPTION"), boldStyle.Sprint("CONF"), boldStyle.Sprint("ACTOR"))
	for _, e := range entries {
		option := e.OptionID
		if e.NotApplicable {
			option = "n/a"
		}
		conf := ""
		if e.ConfidenceLevelID > 0 {
			conf = strconv.Itoa(e.ConfidenceLevelID)
		}
		tbl.AddRow(e.CreatedAt, e.Action, e.QuestionID, option, conf, e.ActorID)
	}
	fmt.Fprintln(a.out, tbl)
	return entries, nil
}

// ShowLevels prints the confidence level catalogue.
func (a *SessionAdapter) ShowLevels(ctx context.Context) []questionnaire.ConfidenceLevel {
	levels := a.service.ConfidenceLevels(ctx)
	for _, l := range levels {
		fmt.Fprintf(a.out, "  %d  %s\n", l.ID, l.Title)
	}
	return levels
}

func (a *SessionAdapter) levelName(ctx context.Context, id int) string {
	for _, l := range a.service.ConfidenceLevels(ctx) {
		if l.ID == id {
			return l.Title
		}
	}
	return strconv.Itoa(id)
}

func describeAnswer(ans *questionnaire.Answer) string {
	switch {
	case ans == nil:
		return "unanswered"
	case ans.IsNotApplicable:
		return "not applicable"
	case ans.SelectedOption == nil:
		return "unanswered"
	}
	out := ans.SelectedOption.Title
	if ans.Approved {
		out += " (approved)"
	}
	return out
}

func levelTitle(l *questionnaire.ConfidenceLevel) string {
	if l == nil {
		return ""
	}
	if l.Title == "" {
		return strconv.Itoa(l.ID)
	}
	return l.Title
}
