package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/assess/internal/adapters/cli"
	"github.com/example/assess/internal/core/issue"
)

// ReviewCmd returns the review command
func ReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review [questionnaire-id]",
		Short: "Show the completion summary of a questionnaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := actorContext(cmd)
			svc, err := startQuiet(ctx, args[0], 0)
			if err != nil {
				return err
			}
			defer svc.Close(ctx)

			_, err = cliadapter.NewSessionAdapter(svc, cmd.OutOrStdout()).ShowReview(ctx)
			return err
		},
	}
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list [questionnaire-id]",
		Short: "List the questions of a questionnaire with their issues",
		Long: `List questions with issue chips, optionally narrowed by issue filters.

Filters: lowconf, noevidence, unresolved, unapproved, unanswered.
A question is listed when it matches any enabled filter.

Examples:
  assess list qn-42
  assess list qn-42 --filter unanswered --filter lowconf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]issue.ID, 0, len(filters))
			for _, f := range filters {
				id, err := issue.ParseID(f)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			ctx := actorContext(cmd)
			svc, err := startQuiet(ctx, args[0], 0)
			if err != nil {
				return err
			}
			defer svc.Close(ctx)

			// list always shows chips
			if !svc.ToggleIssueChips(ctx) {
				svc.ToggleIssueChips(ctx)
			}
			for _, id := range ids {
				if err := svc.SetFilterEnabled(ctx, id, true); err != nil {
					return err
				}
			}
			cliadapter.NewSessionAdapter(svc, cmd.OutOrStdout()).ShowList(ctx)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&filters, "filter", "f", nil, "Issue filter to enable (repeatable)")

	return cmd
}

// ActivityCmd returns the activity command
func ActivityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity [questionnaire-id]",
		Short: "Show the local journal of submitted and approved answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := actorContext(cmd)
			svc, err := startQuiet(ctx, args[0], 0)
			if err != nil {
				return err
			}
			defer svc.Close(ctx)

			_, err = cliadapter.NewSessionAdapter(svc, cmd.OutOrStdout()).ShowActivity(ctx, limit)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")

	return cmd
}
