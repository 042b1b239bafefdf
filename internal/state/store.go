// Package state persists the last known waiting-list position between checks.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"
)

// State is the single persisted record. LastPosition is nil until the first
// successful match; the JSON key is omitted entirely in that case.
type State struct {
	LastPosition   *int      `json:"last_position,omitempty"`
	LastCheckedUTC time.Time `json:"last_checked_utc"`
}

// Store reads and writes the state file. It is the only component that
// touches the backing path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a store bound to path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the canonical state file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the last saved state. A missing, unreadable or corrupt file
// is treated as "no prior state", never as a failure.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("State file unreadable; starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return State{}
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("State file corrupt; starting empty",
			zap.String("path", s.path), zap.Error(err))
		return State{}
	}
	return st
}

// Save writes the state atomically: marshal to a temporary file next to the
// canonical path, then rename over it. A crash mid-save leaves the previous
// record intact.
func (s *Store) Save(st State) error {
	payload, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write temp state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}
	return nil
}
