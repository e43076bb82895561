package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/assess/internal/config"
	"github.com/example/assess/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging .assess.yaml and ASSESS_* variables.

The file is searched in $ASSESS_CONFIG_PATH, ./ and ~/.assess.
Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			printConfig(cmd.OutOrStdout(), cfg)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\n⚠️  %v\n", err)
			}
			return nil
		},
	}
}

func printConfig(out io.Writer, cfg *config.Config) {
	file := cfg.File
	if file == "" {
		file = "(none, defaults and environment only)"
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "file:\t%s\n", file)
	fmt.Fprintf(w, "base_url:\t%s\n", cfg.BaseURL)
	fmt.Fprintf(w, "auth:\t%s\n", authMode(cfg))
	fmt.Fprintf(w, "token:\t%s\n", mask(cfg.Token))
	fmt.Fprintf(w, "client_secret:\t%s\n", mask(cfg.ClientSecret))
	fmt.Fprintf(w, "timeout:\t%s\n", cfg.Timeout)
	fmt.Fprintf(w, "assessment_id:\t%s\n", cfg.AssessmentID)
	fmt.Fprintf(w, "mode:\t%s\n", cfg.Mode)
	fmt.Fprintf(w, "default_confidence:\t%d\n", cfg.DefaultConfidence)
	fmt.Fprintf(w, "page_size:\t%d\n", cfg.PageSize)
	fmt.Fprintf(w, "auto_next:\t%t\n", cfg.AutoNext)
	fmt.Fprintf(w, "user:\t%s (%s)\n", cfg.User.ID, cfg.User.DisplayName)
	fmt.Fprintf(w, "permissions:\tview_dashboard=%t answer_question=%t approve_answer=%t\n",
		cfg.Permissions.ViewDashboard, cfg.Permissions.AnswerQuestion, cfg.Permissions.ApproveAnswer)
	fmt.Fprintf(w, "data_dir:\t%s\n", cfg.DataDir)
	fmt.Fprintf(w, "log_level:\t%s\n", cfg.LogLevel)
	w.Flush()
}

func authMode(cfg *config.Config) string {
	switch {
	case cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "":
		return "client credentials"
	case cfg.Token != "":
		return "static token"
	}
	return "none"
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
