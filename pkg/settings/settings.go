// Package settings persists small per-user application state.
//
// Settings are stored as a JSON file under ~/.config/depscope/. This is
// presentation-layer state only (first-run tracking); the graph engine
// itself never reads or writes it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds persisted user-facing state.
type Settings struct {
	// WelcomeShown records whether the first-run welcome has been displayed.
	WelcomeShown bool `json:"welcome_shown"`
}

// Store reads and writes settings as a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a settings store at path.
// If path is empty, defaults to ~/.config/depscope/settings.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "depscope", "settings.json")
	}
	return &Store{path: path}, nil
}

// Load reads the settings file. A missing file yields zero-value settings.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Settings
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return st, nil
}

// Save writes the settings file, creating the directory if needed.
func (s *Store) Save(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}
