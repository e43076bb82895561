package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/wire"
)

// TakeCmd returns the take command
func TakeCmd() *cobra.Command {
	var position int
	var advanced bool
	var autoNext bool

	cmd := &cobra.Command{
		Use:   "take [questionnaire-id]",
		Short: "Answer a questionnaire interactively",
		Long: `Load a questionnaire and answer it question by question.

Quick mode submits as soon as an option is chosen and moves on.
Advanced mode stages option, confidence and not-applicable locally
until 'submit'. Without --position the last visited question is resumed.

Examples:
  assess take qn-42
  assess take qn-42 --position 7
  assess take qn-42 --advanced --auto-next`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			if advanced {
				cfg.Mode = questionnaire.ModeAdvanced
			}
			if cmd.Flags().Changed("auto-next") {
				cfg.AutoNext = autoNext
			}

			ctx := actorContext(cmd)
			adapter := wire.SessionAdapterWithOutput(cmd.OutOrStdout())
			info, err := adapter.Start(ctx, args[0], position)
			if err != nil {
				return err
			}
			defer wire.SessionService().Close(ctx)
			if info.Total == 0 {
				return nil
			}

			adapter.Help()
			if _, err := adapter.ShowCurrent(ctx); err != nil {
				cmd.PrintErrln(err)
			}
			return runLoop(ctx, adapter, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&position, "position", "p", 0, "1-based question to start at (0 resumes)")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Use advanced mode regardless of config")
	cmd.Flags().BoolVar(&autoNext, "auto-next", false, "Advance after an explicit submit (advanced mode)")

	return cmd
}
