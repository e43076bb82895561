package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/assess/internal/adapters/cli"
	"github.com/example/assess/internal/app"
	"github.com/example/assess/internal/ctxutil"
	"github.com/example/assess/internal/ports/primary"
	"github.com/example/assess/internal/wire"
)

// executor runs one interactive command line.
type executor interface {
	Execute(ctx context.Context, line string) error
}

// actorContext tags the command context with the configured user.
func actorContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxutil.WithActorID(ctx, wire.Config().User.ID)
}

// runLoop reads commands until EOF or quit.
// Remote failures were already reported by the notifier and are not repeated.
func runLoop(ctx context.Context, exec executor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "assess> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		err := exec.Execute(ctx, scanner.Text())
		switch {
		case errors.Is(err, cliadapter.ErrQuit):
			return nil
		case err == nil, app.IsRemoteFailure(err):
		default:
			fmt.Fprintf(out, "✗ %v\n", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// startQuiet starts a session without the interactive banner.
// A zero position keeps the remembered question.
func startQuiet(ctx context.Context, questionnaireID string, position int) (primary.SessionService, error) {
	svc := wire.SessionService()
	if _, err := svc.Start(ctx, primary.StartSessionRequest{QuestionnaireID: questionnaireID, Position: position}); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return svc, nil
}
