package store

import (
	"encoding/json"
	"os"

	"ScreenTone-Go/models"
)

// PrefStore reads and writes the single user preferences file.
type PrefStore struct {
	path string
}

// NewPrefStore creates a store backed by the given file path.
func NewPrefStore(path string) *PrefStore {
	return &PrefStore{path: path}
}

// Load reads the preferences file. A missing file returns (nil, nil);
// the caller falls back to defaults. A malformed file returns an error
// for the caller to log, after which it is treated the same as absent.
func (s *PrefStore) Load() (*models.Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var prefs models.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Save overwrites the preferences file in full.
func (s *PrefStore) Save(prefs models.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
