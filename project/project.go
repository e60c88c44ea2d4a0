// Package project persists scenes and workbench configuration to disk
// as JSON. The engine itself is persistence-agnostic; this package is
// the host-side caller of the scene snapshot format.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drawdeck/drawdeck/scene"
)

// SceneFileExt is the extension used for scene files.
const SceneFileExt = ".deck"

// SaveScene writes a scene snapshot to the given path, creating any
// missing parent directories.
func SaveScene(path string, snap scene.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}

// LoadScene reads a scene snapshot from the given path. The caller
// feeds the result to Store.Import, which performs the structural
// validation.
func LoadScene(path string) (scene.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Snapshot{}, fmt.Errorf("failed to read scene file: %w", err)
	}
	var snap scene.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return scene.Snapshot{}, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if snap.Version > scene.SnapshotVersion {
		return scene.Snapshot{}, fmt.Errorf("scene file version %d is newer than supported version %d",
			snap.Version, scene.SnapshotVersion)
	}
	return snap, nil
}
