package store

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestPresetStore(t *testing.T) (*PresetStore, Paths) {
	t.Helper()
	base := t.TempDir()
	paths := Paths{
		PresetsDir: filepath.Join(base, "presets"),
		RestoreDir: filepath.Join(base, "presetrestore"),
	}
	for _, dir := range []string{paths.PresetsDir, paths.RestoreDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("MkdirAll(%s) failed: %v", dir, err)
		}
	}
	return NewPresetStore(paths), paths
}

func TestPresetStore_ListEmpty(t *testing.T) {
	s, _ := newTestPresetStore(t)

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestPresetStore_ListMissingDirectory(t *testing.T) {
	s := NewPresetStore(Paths{
		PresetsDir: filepath.Join(t.TempDir(), "does-not-exist"),
	})

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestPresetStore_ListSorted(t *testing.T) {
	s, _ := newTestPresetStore(t)

	for _, name := range []string{"zebra", "apple", "mango"} {
		if _, err := s.Save(name, []int{50}); err != nil {
			t.Fatalf("Save(%s) error: %v", name, err)
		}
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"apple.json", "mango.json", "zebra.json"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPresetStore_ListIgnoresOtherFiles(t *testing.T) {
	s, paths := newTestPresetStore(t)

	if err := os.WriteFile(filepath.Join(paths.PresetsDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestPresetStore_SaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestPresetStore(t)

	saved, err := s.Save("office", []int{10, 20, 30})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if saved != "office.json" {
		t.Errorf("Save() name = %q, want office.json", saved)
	}

	levels, err := s.Load("office.json")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []int{10, 20, 30}
	if len(levels) != len(want) {
		t.Fatalf("Load() = %v, want %v", levels, want)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("Load()[%d] = %d, want %d", i, levels[i], want[i])
		}
	}
}

func TestPresetStore_SaveKeepsExistingSuffix(t *testing.T) {
	s, _ := newTestPresetStore(t)

	saved, err := s.Save("office.json", []int{5})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if saved != "office.json" {
		t.Errorf("Save() name = %q, want office.json", saved)
	}
}

func TestPresetStore_SaveOverwrites(t *testing.T) {
	s, _ := newTestPresetStore(t)

	if _, err := s.Save("p", []int{1}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := s.Save("p", []int{2}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	levels, err := s.Load("p.json")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(levels) != 1 || levels[0] != 2 {
		t.Errorf("Load() = %v, want [2]", levels)
	}
}

func TestPresetStore_LoadMalformed(t *testing.T) {
	s, paths := newTestPresetStore(t)

	if err := os.WriteFile(filepath.Join(paths.PresetsDir, "bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := s.Load("bad.json"); err == nil {
		t.Error("Load() of malformed preset should fail")
	}
}

func TestPresetStore_LoadMissing(t *testing.T) {
	s, _ := newTestPresetStore(t)

	if _, err := s.Load("nope.json"); err == nil {
		t.Error("Load() of missing preset should fail")
	}
}

func TestPresetStore_DeleteMovesToRestore(t *testing.T) {
	s, paths := newTestPresetStore(t)

	if _, err := s.Save("doomed", []int{10, 20}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	original, err := os.ReadFile(filepath.Join(paths.PresetsDir, "doomed.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	existed, err := s.Delete("doomed.json")
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if !existed {
		t.Error("Delete() existed = false, want true")
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() after delete = %v, want empty", names)
	}

	restored, err := os.ReadFile(filepath.Join(paths.RestoreDir, "doomed.json"))
	if err != nil {
		t.Fatalf("deleted preset not found in restore dir: %v", err)
	}
	if string(restored) != string(original) {
		t.Errorf("restored file = %q, want byte-identical %q", restored, original)
	}
}

func TestPresetStore_DeleteMissingIsNoOp(t *testing.T) {
	s, _ := newTestPresetStore(t)

	existed, err := s.Delete("ghost.json")
	if err != nil {
		t.Errorf("Delete() of missing preset should be a no-op, got: %v", err)
	}
	if existed {
		t.Error("Delete() existed = true for a preset that was never saved")
	}
}
