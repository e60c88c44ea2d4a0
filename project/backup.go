package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/drawdeck/drawdeck/scene"
)

const backupTimeFormat = "20060102-150405"

// WriteBackup writes a timestamped copy of the snapshot into the backup
// directory and returns the file path.
func WriteBackup(dir string, snap scene.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	name := fmt.Sprintf("scene-%s%s", time.Now().UTC().Format(backupTimeFormat), SceneFileExt)
	path := filepath.Join(dir, name)
	if err := SaveScene(path, snap); err != nil {
		return "", err
	}
	return path, nil
}

// ListBackups returns the backup file paths in the directory, newest
// first. A missing directory yields an empty list.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "scene-") && strings.HasSuffix(name, SceneFileExt) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	// Timestamped names sort lexically; reverse for newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// PruneBackups deletes all but the newest keep backups. keep < 1 keeps
// one.
func PruneBackups(dir string, keep int) error {
	if keep < 1 {
		keep = 1
	}
	paths, err := ListBackups(dir)
	if err != nil {
		return err
	}
	for _, p := range paths[min(keep, len(paths)):] {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}
