// Package diskv persists the last visited question per questionnaire on disk.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/example/assess/internal/ports/secondary"
)

// PositionStore implements secondary.PositionStore with diskv.
type PositionStore struct {
	d   *diskv.Diskv
	now func() time.Time
}

var _ secondary.PositionStore = (*PositionStore)(nil)

type positionRecord struct {
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPositionStore creates a store rooted at basePath.
func NewPositionStore(basePath string) *PositionStore {
	return &PositionStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      64 * 1024,
		}),
		now: time.Now,
	}
}

// SavePosition records the 1-based position for a questionnaire.
func (s *PositionStore) SavePosition(ctx context.Context, assessmentID, questionnaireID string, position int) error {
	if position < 1 {
		return fmt.Errorf("invalid position %d", position)
	}
	key, err := toKey(assessmentID, questionnaireID)
	if err != nil {
		return err
	}
	val, err := json.Marshal(positionRecord{Position: position, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode position: %w", err)
	}
	if err := s.d.Write(key, val); err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// LoadPosition returns the saved position, or ok=false when none exists.
func (s *PositionStore) LoadPosition(ctx context.Context, assessmentID, questionnaireID string) (int, bool, error) {
	key, err := toKey(assessmentID, questionnaireID)
	if err != nil {
		return 0, false, err
	}
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load position: %w", err)
	}
	var rec positionRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return 0, false, fmt.Errorf("failed to decode position: %w", err)
	}
	if rec.Position < 1 {
		return 0, false, nil
	}
	return rec.Position, true, nil
}

// Forget removes the saved position of a questionnaire.
func (s *PositionStore) Forget(assessmentID, questionnaireID string) error {
	key, err := toKey(assessmentID, questionnaireID)
	if err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to forget position: %w", err)
	}
	return nil
}

// toKey makes `assessment/questionnaire` with both parts path-escaped.
func toKey(assessmentID, questionnaireID string) (string, error) {
	if assessmentID == "" || questionnaireID == "" {
		return "", fmt.Errorf("assessment and questionnaire ids are required")
	}
	return url.PathEscape(assessmentID) + "/" + url.PathEscape(questionnaireID), nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}
