package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/assess/internal/core/questionnaire"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".assess.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Mode != questionnaire.ModeQuick {
		t.Errorf("expected quick mode, got %s", cfg.Mode)
	}
	if cfg.DefaultConfidence != 3 || cfg.PageSize != 50 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Timeout)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("expected warn level, got %s", cfg.LogLevel)
	}
	if strings.HasPrefix(cfg.DataDir, "~") {
		t.Errorf("data_dir should be expanded, got %s", cfg.DataDir)
	}
	if cfg.File != "" {
		t.Errorf("no file expected, got %s", cfg.File)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
base_url: https://assess.example.com
assessment_id: as-42
mode: advanced
default_confidence: 4
auto_next: true
timeout: 5s
log_level: debug
user:
  id: u-1
  display_name: Ada
permissions:
  approve_answer: true
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BaseURL != "https://assess.example.com" || cfg.AssessmentID != "as-42" {
		t.Errorf("unexpected remote settings %+v", cfg)
	}
	if cfg.Mode != questionnaire.ModeAdvanced || cfg.DefaultConfidence != 4 || !cfg.AutoNext {
		t.Errorf("unexpected session settings %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected timeout/level %s %s", cfg.Timeout, cfg.LogLevel)
	}
	if cfg.User.ID != "u-1" || cfg.User.DisplayName != "Ada" {
		t.Errorf("unexpected user %+v", cfg.User)
	}
	if !cfg.Permissions.ApproveAnswer || !cfg.Permissions.AnswerQuestion {
		t.Errorf("unexpected permissions %+v", cfg.Permissions)
	}
	if cfg.File == "" {
		t.Error("expected config file to be recorded")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, "assessment_id: from-file\n")
	t.Setenv("ASSESS_ASSESSMENT_ID", "from-env")
	t.Setenv("ASSESS_USER_ID", "u-env")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.AssessmentID != "from-env" {
		t.Errorf("env should win, got %s", cfg.AssessmentID)
	}
	if cfg.User.ID != "u-env" {
		t.Errorf("nested env key should resolve, got %s", cfg.User.ID)
	}
}

func TestLoadConfig_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "assessment_id: from-override\n")
	t.Setenv(ConfigPathEnv, dir)

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AssessmentID != "from-override" {
		t.Errorf("expected override dir to be searched, got %q", cfg.AssessmentID)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad mode", "mode: turbo\n"},
		{"bad log level", "log_level: chatty\n"},
		{"bad yaml", "base_url: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnv, "")
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			if _, err := LoadConfig(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{BaseURL: "https://x", AssessmentID: "as-1", DefaultConfidence: 3, PageSize: 50}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, "base_url is required"},
		{"missing assessment", func(c *Config) { c.AssessmentID = "" }, "assessment_id is required"},
		{"zero confidence", func(c *Config) { c.DefaultConfidence = 0 }, "default_confidence"},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
