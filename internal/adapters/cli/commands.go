package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/ports/primary"
)

// ErrQuit is returned by Execute when the user ends the session.
var ErrQuit = errors.New("quit")

const helpText = `Commands:
  n, next              next question (review after the last one)
  p, prev              previous question
  g, goto N            jump to question N
  o, option X          choose option X (number or option id)
  clear                clear the answer
  c, confidence N      stage confidence level N, 0 clears (advanced)
  na on|off            stage not applicable (advanced)
  staged               show the staged answer (advanced)
  s, submit            submit the staged answer (advanced)
  a, approve           approve the pending answer
  auto on|off          advance after submit (advanced)
  l, list              side list
  sidebar              show or hide the side list
  chips                show or hide issue chips
  f, filter [ID on|off] list or toggle issue filters
  r, review            review summary
  h, history           answers changed in this session
  activity [N]         answer journal
  levels               confidence levels
  q, quit              leave the session`

// Help prints the command reference.
func (a *SessionAdapter) Help() {
	fmt.Fprintln(a.out, helpText)
}

// Execute runs one interactive command line. It returns ErrQuit to end the loop.
func (a *SessionAdapter) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		_, err := a.ShowCurrent(ctx)
		return err
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return ErrQuit
	case "?", "help":
		a.Help()
		return nil
	case "n", "next":
		return a.moveAndShow(ctx, a.service.GoNext)
	case "p", "prev", "previous":
		return a.moveAndShow(ctx, a.service.GoPrevious)
	case "g", "goto":
		n, err := intArg(args, "position")
		if err != nil {
			return err
		}
		return a.moveAndShow(ctx, func(ctx context.Context) error { return a.service.GoTo(ctx, n) })
	case "o", "option":
		return a.selectOption(ctx, args)
	case "clear":
		return a.moveAndShow(ctx, func(ctx context.Context) error {
			return a.service.Submit(ctx, primary.SubmitAnswerRequest{})
		})
	case "c", "confidence":
		n, err := intArg(args, "confidence level")
		if err != nil {
			return err
		}
		if err := a.service.StageConfidence(ctx, n); err != nil {
			return err
		}
		_, err = a.ShowStaged(ctx)
		return err
	case "na":
		on, err := onOffArg(args)
		if err != nil {
			return err
		}
		if err := a.service.StageNotApplicable(ctx, on); err != nil {
			return err
		}
		_, err = a.ShowStaged(ctx)
		return err
	case "staged":
		_, err := a.ShowStaged(ctx)
		return err
	case "s", "submit":
		return a.moveAndShow(ctx, a.service.SubmitStaged)
	case "a", "approve":
		return a.moveAndShow(ctx, a.service.Approve)
	case "auto":
		on, err := onOffArg(args)
		if err != nil {
			return err
		}
		a.service.SetAutoNext(ctx, on)
		fmt.Fprintf(a.out, "Auto next %s\n", onOff(on))
		return nil
	case "l", "list":
		a.ShowList(ctx)
		return nil
	case "sidebar":
		fmt.Fprintf(a.out, "Side list %s\n", onOff(a.service.ToggleSidebar(ctx)))
		return nil
	case "chips":
		fmt.Fprintf(a.out, "Issue chips %s\n", onOff(a.service.ToggleIssueChips(ctx)))
		return nil
	case "f", "filter":
		return a.filter(ctx, args)
	case "r", "review":
		_, err := a.ShowReview(ctx)
		return err
	case "h", "history":
		a.ShowHistory(ctx)
		return nil
	case "activity":
		limit := 20
		if len(args) > 0 {
			n, err := intArg(args, "limit")
			if err != nil {
				return err
			}
			limit = n
		}
		_, err := a.ShowActivity(ctx, limit)
		return err
	case "levels":
		a.ShowLevels(ctx)
		return nil
	}
	return fmt.Errorf("unknown command %q (try 'help')", cmd)
}

func (a *SessionAdapter) moveAndShow(ctx context.Context, move func(context.Context) error) error {
	if err := move(ctx); err != nil {
		return err
	}
	_, err := a.ShowCurrent(ctx)
	return err
}

// selectOption accepts a 1-based option number or an option id.
func (a *SessionAdapter) selectOption(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: option <number|id>")
	}
	view, err := a.service.Current(ctx)
	if err != nil {
		return err
	}
	if view.InReview {
		return fmt.Errorf("no question selected in review")
	}

	optionID := args[0]
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(view.Question.Options) {
			return fmt.Errorf("option %d out of range 1-%d", n, len(view.Question.Options))
		}
		optionID = view.Question.Options[n-1].ID
	}

	if err := a.service.SelectOption(ctx, optionID); err != nil {
		return err
	}
	if view.Question.ID != "" {
		if staged, err := a.service.Staged(ctx); err == nil && staged.QuestionID == view.Question.ID {
			a.ShowStaged(ctx)
			return nil
		}
	}
	_, err = a.ShowCurrent(ctx)
	return err
}

func (a *SessionAdapter) filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.ShowFilters(ctx)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: filter <id> on|off")
	}
	id, err := issue.ParseID(args[0])
	if err != nil {
		return err
	}
	on, err := onOffArg(args[1:])
	if err != nil {
		return err
	}
	if err := a.service.SetFilterEnabled(ctx, id, on); err != nil {
		return err
	}
	a.ShowList(ctx)
	return nil
}

func intArg(args []string, name string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one %s argument", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[0])
	}
	return n, nil
}

func onOffArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
