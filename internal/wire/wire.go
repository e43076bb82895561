// Package wire provides dependency injection for the assess application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	cliadapter "github.com/example/assess/internal/adapters/cli"
	"github.com/example/assess/internal/adapters/diskv"
	"github.com/example/assess/internal/adapters/httpapi"
	"github.com/example/assess/internal/adapters/identity"
	"github.com/example/assess/internal/adapters/sqlite"
	"github.com/example/assess/internal/app"
	"github.com/example/assess/internal/config"
	"github.com/example/assess/internal/core/issue"
	"github.com/example/assess/internal/db"
	"github.com/example/assess/internal/ports/primary"
)

var (
	cfg            *config.Config
	sessionService primary.SessionService
	once           sync.Once
	cfgOnce        sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

func loadConfig() {
	loaded, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = loaded
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg := Config()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db.SetDataDir(cfg.DataDir)
	database, err := db.Open()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	client, err := httpapi.New(httpapi.Config{
		BaseURL:      cfg.BaseURL,
		Token:        cfg.Token,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		log.Fatalf("failed to initialize api client: %v", err)
	}

	// Create secondary adapters
	gateway := httpapi.NewGateway(client)
	notifier := cliadapter.NewConsoleNotifier(os.Stderr)
	identityProvider := identity.NewStaticProvider(cfg.User, cfg.Permissions)
	positions := diskv.NewPositionStore(filepath.Join(cfg.DataDir, "positions"))
	activity := sqlite.NewActivityLogRepository(database)

	sessionService = app.NewSessionService(app.SessionConfig{
		AssessmentID:      cfg.AssessmentID,
		Mode:              cfg.Mode,
		PageSize:          cfg.PageSize,
		DefaultConfidence: cfg.DefaultConfidence,
		AutoNext:          cfg.AutoNext,
	}, gateway, notifier, identityProvider, positions, activity, issue.DefaultLabels, logger)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	once.Do(initServices)
	return cliadapter.NewSessionAdapter(sessionService, out)
}
