package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/assess/internal/cli"
	"github.com/example/assess/internal/db"
	"github.com/example/assess/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "assess",
		Short:   "assess - answer assessment questionnaires from the terminal",
		Version: version.String(),
		Long: `assess is a CLI client for answering assessment questionnaires.
It loads a questionnaire from the assessment service, lets you answer,
approve and review questions, and keeps a local journal of your answers.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.TakeCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.ReviewCmd())
	rootCmd.AddCommand(cli.ActivityCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	err := rootCmd.Execute()
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
