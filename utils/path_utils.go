package utils

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"ScreenTone-Go/store"
)

const (
	appDirName     = "ScreenTone"
	prefsFileName  = "user_prefs.json"
	presetsDirName = "presets"
	restoreDirName = "presetrestore"
)

// AppDataDir returns the per-user ScreenTone data directory, creating it
// if needed. On Windows this resolves under %LOCALAPPDATA%.
func AppDataDir() (string, error) {
	dir := filepath.Join(xdg.DataHome, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPaths resolves the preferences file and the preset/restore
// directories inside the app data directory, creating the directories.
func DefaultPaths() (store.Paths, error) {
	base, err := AppDataDir()
	if err != nil {
		return store.Paths{}, err
	}

	paths := store.Paths{
		PrefsFile:  filepath.Join(base, prefsFileName),
		PresetsDir: filepath.Join(base, presetsDirName),
		RestoreDir: filepath.Join(base, restoreDirName),
	}
	for _, dir := range []string{paths.PresetsDir, paths.RestoreDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return store.Paths{}, err
		}
	}
	return paths, nil
}
