// Package db owns the local answer activity journal.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"

	_ "github.com/mattn/go-sqlite3"
)

const (
	defaultDataDir = "~/.assess"
	journalFile    = "assess.db"
)

// journalParams makes a second assess process wait on the write lock.
const journalParams = "?_busy_timeout=5000&_journal_mode=WAL"

var (
	mu      sync.Mutex
	journal *sql.DB
	dataDir string
)

// SetDataDir overrides the journal directory. It only affects the next Open.
func SetDataDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	dataDir = dir
}

// Open returns the shared journal handle. The first call creates the data
// directory and brings the schema up to date.
func Open() (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if journal != nil {
		return journal, nil
	}

	path, err := journalPath(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+journalParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	journal = conn
	return journal, nil
}

// Close closes the journal if it was opened. A later Open reconnects.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if journal == nil {
		return nil
	}
	err := journal.Close()
	journal = nil
	return err
}

// Path returns the journal file for the configured data directory.
func Path() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	return journalPath(dataDir)
}

func journalPath(dir string) (string, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory %s: %w", dir, err)
	}
	return filepath.Join(expanded, journalFile), nil
}
