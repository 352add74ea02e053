// Package timer owns the local work timer: the single persisted record
// and the start/status/stop lifecycle around it.
package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record is the persisted timer state. At most one record exists:
// its presence means a timer is running, its absence means none is.
type Record struct {
	IssueID   int    `json:"issue_id"`
	StartTime string `json:"start_time"` // RFC 3339 with sub-second precision, UTC
}

// StartedAt parses the record's start timestamp.
func (r Record) StartedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.StartTime)
}

const defaultStorePath = "~/.redminecli/timer.json"

// Store persists the timer record as a single JSON file. Writes replace
// the whole file atomically so a reader never sees a partial record.
type Store struct {
	path string
}

// NewStore creates a store at the given path. An empty path uses the
// default location under ~/.redminecli.
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: resolved}, nil
}

// Load returns the current record, or nil when none exists. Content
// that fails to parse or validate is treated the same as no timer:
// a corrupt file must never block the CLI.
func (s *Store) Load() (*Record, error) {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read timer file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(bytes, &rec); err != nil {
		return nil, nil
	}
	if rec.IssueID <= 0 {
		return nil, nil
	}
	if _, err := rec.StartedAt(); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// Save persists the record, replacing any prior one.
func (s *Store) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create timer dir: %w", err)
	}

	bytes, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal timer: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write timer file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace timer file: %w", err)
	}
	return nil
}

// Clear removes the persisted record and reports whether one was
// present. Clearing an already-empty store is not an error.
func (s *Store) Clear() (bool, error) {
	err := os.Remove(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove timer file: %w", err)
	}
	return true, nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultStorePath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
