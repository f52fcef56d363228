package store

import (
	"os"
	"path/filepath"
	"testing"

	"ScreenTone-Go/models"
)

func TestPrefStore_LoadAbsent(t *testing.T) {
	s := NewPrefStore(filepath.Join(t.TempDir(), "user_prefs.json"))

	prefs, err := s.Load()
	if err != nil {
		t.Fatalf("Load() of absent file should not error, got: %v", err)
	}
	if prefs != nil {
		t.Errorf("Load() = %+v, want nil", prefs)
	}
}

func TestPrefStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_prefs.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := NewPrefStore(path)
	prefs, err := s.Load()
	if err == nil {
		t.Error("Load() of malformed file should return an error")
	}
	if prefs != nil {
		t.Errorf("Load() = %+v, want nil on malformed file", prefs)
	}
}

func TestPrefStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewPrefStore(filepath.Join(t.TempDir(), "user_prefs.json"))

	in := models.Preferences{
		WindowPosition:   []int{120, 340},
		BrightnessLevels: []int{40, 40},
		AutoStart:        true,
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if out == nil {
		t.Fatal("Load() = nil, want preferences")
	}
	if !out.HasWindowPosition() {
		t.Error("HasWindowPosition() = false, want true")
	}
	if out.WindowPosition[0] != 120 || out.WindowPosition[1] != 340 {
		t.Errorf("WindowPosition = %v, want [120 340]", out.WindowPosition)
	}
	if !models.LevelsEqual(out.BrightnessLevels, in.BrightnessLevels) {
		t.Errorf("BrightnessLevels = %v, want %v", out.BrightnessLevels, in.BrightnessLevels)
	}
	if !out.AutoStart {
		t.Error("AutoStart = false, want true")
	}
}

func TestPrefStore_MissingKeysDefaultToAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_prefs.json")
	if err := os.WriteFile(path, []byte(`{"brightness_levels":[55]}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := NewPrefStore(path)
	prefs, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if prefs.HasWindowPosition() {
		t.Error("HasWindowPosition() = true, want false for missing key")
	}
	if !models.LevelsEqual(prefs.BrightnessLevels, []int{55}) {
		t.Errorf("BrightnessLevels = %v, want [55]", prefs.BrightnessLevels)
	}
}
