package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLibraryDirEnvOverride(t *testing.T) {
	original := os.Getenv(EnvLibraryDir)
	os.Setenv(EnvLibraryDir, "/custom/library")
	defer os.Setenv(EnvLibraryDir, original)

	dir, err := ResolveLibraryDir()
	if err != nil {
		t.Fatalf("Failed to resolve library dir: %v", err)
	}
	if dir != "/custom/library" {
		t.Errorf("Expected '/custom/library', got '%s'", dir)
	}
}

func TestResolveLibraryDirDefault(t *testing.T) {
	original := os.Getenv(EnvLibraryDir)
	os.Unsetenv(EnvLibraryDir)
	defer os.Setenv(EnvLibraryDir, original)

	dir, err := ResolveLibraryDir()
	if err != nil {
		t.Fatalf("Failed to resolve library dir: %v", err)
	}
	if filepath.Base(dir) != ".promptbrush" {
		t.Errorf("Expected default dir ending in .promptbrush, got '%s'", dir)
	}
}

func TestNewSettingsDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "promptbrush-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	settings, err := NewSettings(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create settings: %v", err)
	}

	if settings.DefaultFormat != "png" {
		t.Errorf("Expected default format 'png', got '%s'", settings.DefaultFormat)
	}
}

func TestSettingsSaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "promptbrush-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	settings, err := NewSettings(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	settings.DefaultFormat = "jpg"
	if err := settings.Save(); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	reloaded, err := NewSettings(tmpDir)
	if err != nil {
		t.Fatalf("Failed to reload settings: %v", err)
	}
	if reloaded.DefaultFormat != "jpg" {
		t.Errorf("Expected format 'jpg' after reload, got '%s'", reloaded.DefaultFormat)
	}
}

func TestSettingsLoadEmptyFormatFallsBack(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "promptbrush-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configDir := filepath.Join(tmpDir, ".promptbrush")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("default_format: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := NewSettings(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if settings.DefaultFormat != "png" {
		t.Errorf("Expected fallback to 'png', got '%s'", settings.DefaultFormat)
	}
}
