// Package config manages library-level settings for promptbrush.
//
// Settings live in <library root>/.promptbrush/config.yaml. The library root
// itself resolves from the PROMPTBRUSH_DIR environment variable, falling back
// to ~/.promptbrush.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvLibraryDir is the environment variable that overrides the library root
const EnvLibraryDir = "PROMPTBRUSH_DIR"

// Settings holds user-tunable library configuration
type Settings struct {
	// DefaultFormat is the image format used when save-image is called
	// without an explicit format
	DefaultFormat string `yaml:"default_format"`

	configPath string
}

// ResolveLibraryDir returns the library root, honoring PROMPTBRUSH_DIR
func ResolveLibraryDir() (string, error) {
	if dir := os.Getenv(EnvLibraryDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".promptbrush"), nil
}

// NewSettings loads the settings for the library rooted at baseDir, creating
// defaults when no config file exists yet
func NewSettings(baseDir string) (*Settings, error) {
	if baseDir == "" {
		dir, err := ResolveLibraryDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}

	settings := &Settings{
		DefaultFormat: "png",
		configPath:    filepath.Join(baseDir, ".promptbrush", "config.yaml"),
	}

	if err := settings.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return settings, nil
}

// Load reads the settings file from disk
func (s *Settings) Load() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	if s.DefaultFormat == "" {
		s.DefaultFormat = "png"
	}

	return nil
}

// Save writes the settings file to disk
func (s *Settings) Save() error {
	configDir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return os.WriteFile(s.configPath, data, 0644)
}
