// Package config loads the assess configuration with viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/example/assess/internal/core/questionnaire"
)

// ConfigPathEnv overrides the directory searched first for .assess.yaml.
const ConfigPathEnv = "ASSESS_CONFIG_PATH"

// Config represents the assess configuration
type Config struct {
	BaseURL      string
	Token        string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	AssessmentID      string
	Mode              questionnaire.Mode
	DefaultConfidence int
	PageSize          int
	AutoNext          bool

	User        questionnaire.User
	Permissions questionnaire.Permissions

	DataDir  string
	LogLevel slog.Level

	// File is the config file that was read, empty when none was found.
	File string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("token", "")
	v.SetDefault("token_url", "")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("timeout", "30s")
	v.SetDefault("assessment_id", "")
	v.SetDefault("mode", string(questionnaire.ModeQuick))
	v.SetDefault("default_confidence", 3)
	v.SetDefault("page_size", 50)
	v.SetDefault("auto_next", false)
	v.SetDefault("user.id", "")
	v.SetDefault("user.display_name", "")
	v.SetDefault("user.picture_link", "")
	v.SetDefault("permissions.view_dashboard", true)
	v.SetDefault("permissions.answer_question", true)
	v.SetDefault("permissions.approve_answer", false)
	v.SetDefault("data_dir", "~/.assess")
	v.SetDefault("log_level", "warn")
}

// LoadConfig reads .assess.yaml and ASSESS_* environment variables.
// Resolution order for the file: $ASSESS_CONFIG_PATH, then searchDirs, and
// when none are given ./ and ~/.assess. A missing file is not an error.
func LoadConfig(searchDirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".assess") // .yaml is implicit
	v.SetEnvPrefix("ASSESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	if len(searchDirs) == 0 {
		searchDirs = []string{"./", "~/.assess"}
	}
	for _, dir := range searchDirs {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path %q: %w", dir, err)
		}
		v.AddConfigPath(expanded)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	mode, err := questionnaire.ParseMode(v.GetString("mode"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("failed to parse config: invalid log_level %q", v.GetString("log_level"))
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to expand data_dir: %w", err)
	}

	cfg := &Config{
		BaseURL:           v.GetString("base_url"),
		Token:             v.GetString("token"),
		TokenURL:          v.GetString("token_url"),
		ClientID:          v.GetString("client_id"),
		ClientSecret:      v.GetString("client_secret"),
		Timeout:           v.GetDuration("timeout"),
		AssessmentID:      v.GetString("assessment_id"),
		Mode:              mode,
		DefaultConfidence: v.GetInt("default_confidence"),
		PageSize:          v.GetInt("page_size"),
		AutoNext:          v.GetBool("auto_next"),
		User: questionnaire.User{
			ID:          v.GetString("user.id"),
			DisplayName: v.GetString("user.display_name"),
			PictureLink: v.GetString("user.picture_link"),
		},
		Permissions: questionnaire.Permissions{
			ViewDashboard:  v.GetBool("permissions.view_dashboard"),
			AnswerQuestion: v.GetBool("permissions.answer_question"),
			ApproveAnswer:  v.GetBool("permissions.approve_answer"),
		},
		DataDir:  dataDir,
		LogLevel: level,
		File:     v.ConfigFileUsed(),
	}
	return cfg, nil
}

// Validate checks the settings needed to talk to the remote service.
func (c *Config) Validate() error {
	var problems []string
	if c.BaseURL == "" {
		problems = append(problems, "base_url is required")
	}
	if c.AssessmentID == "" {
		problems = append(problems, "assessment_id is required")
	}
	if c.DefaultConfidence < 1 {
		problems = append(problems, "default_confidence must be positive")
	}
	if c.PageSize < 1 {
		problems = append(problems, "page_size must be positive")
	}
	if c.Timeout < 0 {
		problems = append(problems, "timeout must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
