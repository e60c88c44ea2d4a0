package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxRecentScenes caps the recent-file list.
const maxRecentScenes = 10

// Config holds the user-level workbench configuration.
type Config struct {
	GridSize      float64  `json:"grid_size"`
	LayoutPadding float64  `json:"layout_padding"`
	BackupKeep    int      `json:"backup_keep"`
	RecentScenes  []string `json:"recent_scenes"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GridSize:      20,
		LayoutPadding: 30,
		BackupKeep:    5,
		RecentScenes:  []string{},
		Theme:         "system",
	}
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.drawdeck/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".drawdeck")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveConfig persists a Config to the given path as JSON, creating any
// missing parent directories.
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadConfig reads a Config from the given path. If the file does not
// exist, it returns DefaultConfig with no error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	if config.RecentScenes == nil {
		config.RecentScenes = []string{}
	}
	if config.GridSize < 1 {
		config.GridSize = DefaultConfig().GridSize
	}
	return config, nil
}

// AddRecentScene moves or inserts a path at the front of the
// recent-scenes list, deduplicating and capping the list length.
func (c *Config) AddRecentScene(path string) {
	recent := []string{path}
	for _, p := range c.RecentScenes {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentScenes {
		recent = recent[:maxRecentScenes]
	}
	c.RecentScenes = recent
}
