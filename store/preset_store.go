package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PresetExt is the file suffix every preset is stored under.
const PresetExt = ".json"

// PresetStore manages the presets directory. Presets are identified by
// their file name (base name + PresetExt); deletion moves the file into
// the restore directory instead of erasing it.
type PresetStore struct {
	dir        string
	restoreDir string
}

// NewPresetStore creates a store over the preset and restore directories
// named by paths.
func NewPresetStore(paths Paths) *PresetStore {
	return &PresetStore{
		dir:        paths.PresetsDir,
		restoreDir: paths.RestoreDir,
	}
}

// List scans the presets directory and returns the preset names in
// alphabetical order. An empty or missing directory yields an empty list.
func (s *PresetStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PresetExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Save writes levels as the named preset, overwriting any existing file.
// The PresetExt suffix is appended when missing. The written name is
// returned so callers can select it.
func (s *PresetStore) Save(name string, levels []int) (string, error) {
	if !strings.HasSuffix(name, PresetExt) {
		name += PresetExt
	}
	data, err := json.Marshal(levels)
	if err != nil {
		return name, err
	}
	return name, os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}

// Load parses the named preset as an ordered sequence of levels.
func (s *PresetStore) Load(name string) ([]int, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	var levels []int
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// Delete moves the named preset into the restore directory and reports
// whether the preset existed. A preset that does not exist is a no-op.
// The file is moved verbatim, so a deleted preset can be recovered by
// hand.
func (s *PresetStore) Delete(name string) (bool, error) {
	src := filepath.Join(s.dir, name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return false, nil
	}
	return true, os.Rename(src, filepath.Join(s.restoreDir, name))
}
