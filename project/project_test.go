package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/drawdeck/drawdeck/geom"
	"github.com/drawdeck/drawdeck/scene"
)

func TestSaveAndLoadScene(t *testing.T) {
	s := scene.New()
	box := scene.NewShape(scene.VariantRectangle, 10, 10, 120, 80)
	box.Shape.Label = "Pump"
	line := scene.NewLine(geom.Point{X: 130, Y: 50}, geom.Point{X: 250, Y: 50})
	s.Add(box)
	s.Add(line)
	snap := s.Export()

	path := filepath.Join(t.TempDir(), "nested", "dir", "scene"+SceneFileExt)
	if err := SaveScene(path, snap); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if !reflect.DeepEqual(snap.Elements, loaded.Elements) {
		t.Error("elements should survive a save/load round trip")
	}
	if !reflect.DeepEqual(snap.ElementOrder, loaded.ElementOrder) {
		t.Error("paint order should survive a save/load round trip")
	}

	s2 := scene.New()
	if res := s2.Import(loaded); !res.OK {
		t.Fatalf("loaded snapshot should import cleanly: %s", res.Message)
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "nope.deck"))
	if err == nil {
		t.Error("expected error for missing scene file")
	}
}

func TestLoadSceneBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.deck")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := LoadScene(path); err == nil {
		t.Error("expected error for malformed scene file")
	}
}

func TestLoadSceneRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.deck")
	os.WriteFile(path, []byte(`{"version": 99, "elements": {}, "element_order": []}`), 0644)
	_, err := LoadScene(path)
	if err == nil {
		t.Fatal("expected error for a newer file version")
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("error should mention the version mismatch: %v", err)
	}
}

func TestLoadConfigMissingReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", config)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")
	config := DefaultConfig()
	config.GridSize = 10
	config.Theme = "dark"
	config.AddRecentScene("/tmp/a.deck")

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(config, loaded) {
		t.Errorf("config should round-trip: saved %+v, loaded %+v", config, loaded)
	}
}

func TestLoadConfigNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"grid_size": 0, "theme": "dark"}`), 0644)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.GridSize != DefaultConfig().GridSize {
		t.Errorf("zero grid size should reset to default, got %v", config.GridSize)
	}
	if config.RecentScenes == nil {
		t.Error("recent scenes should never be nil")
	}
	if config.Theme != "dark" {
		t.Error("valid fields should pass through")
	}
}

func TestAddRecentScene(t *testing.T) {
	config := DefaultConfig()
	config.AddRecentScene("/tmp/a.deck")
	config.AddRecentScene("/tmp/b.deck")
	config.AddRecentScene("/tmp/a.deck") // re-open moves to front

	want := []string{"/tmp/a.deck", "/tmp/b.deck"}
	if !reflect.DeepEqual(config.RecentScenes, want) {
		t.Errorf("expected %v, got %v", want, config.RecentScenes)
	}

	for i := 0; i < 20; i++ {
		config.AddRecentScene(filepath.Join("/tmp", "scene-"+string(rune('a'+i))+".deck"))
	}
	if len(config.RecentScenes) != maxRecentScenes {
		t.Errorf("recent list should cap at %d, got %d", maxRecentScenes, len(config.RecentScenes))
	}
}

func TestWriteBackup(t *testing.T) {
	s := scene.New()
	s.Add(scene.NewShape(scene.VariantRectangle, 0, 0, 50, 50))
	dir := filepath.Join(t.TempDir(), "backups")

	path, err := WriteBackup(dir, s.Export())
	if err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}
	if filepath.Ext(path) != SceneFileExt {
		t.Errorf("backup should use the scene extension, got %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file should exist: %v", err)
	}
	if _, err := LoadScene(path); err != nil {
		t.Errorf("backup should be a loadable scene: %v", err)
	}
}

func writeFakeBackup(t *testing.T, dir, stamp string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "scene-"+stamp+SceneFileExt)
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListBackupsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := writeFakeBackup(t, dir, "20260101-090000")
	newer := writeFakeBackup(t, dir, "20260301-090000")
	newest := writeFakeBackup(t, dir, "20260801-090000")
	// unrelated files are ignored
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	paths, err := ListBackups(dir)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	want := []string{newest, newer, old}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	paths, err := ListBackups(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no backups, got %v", paths)
	}
}

func TestPruneBackups(t *testing.T) {
	dir := t.TempDir()
	writeFakeBackup(t, dir, "20260101-090000")
	writeFakeBackup(t, dir, "20260301-090000")
	keep1 := writeFakeBackup(t, dir, "20260801-090000")
	keep2 := writeFakeBackup(t, dir, "20260802-090000")

	if err := PruneBackups(dir, 2); err != nil {
		t.Fatalf("PruneBackups failed: %v", err)
	}
	paths, _ := ListBackups(dir)
	want := []string{keep2, keep1}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}

	// keep below one floors at one
	if err := PruneBackups(dir, 0); err != nil {
		t.Fatalf("PruneBackups failed: %v", err)
	}
	paths, _ = ListBackups(dir)
	if len(paths) != 1 || paths[0] != keep2 {
		t.Errorf("expected only the newest backup, got %v", paths)
	}
}
