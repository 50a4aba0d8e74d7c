package artifact

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/promptbrush/promptbrush/internal/errors"
)

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	payload := base64.StdEncoding.EncodeToString([]byte("ab"))

	p := NewPersister()
	resolved, err := p.Save(payload, filepath.Join(tmpDir, "out"), "png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if resolved != filepath.Join(tmpDir, "out.png") {
		t.Errorf("Expected extension to be appended, got '%s'", resolved)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(data, []byte("ab")) {
		t.Errorf("Expected file to contain 'ab', got %q", data)
	}
}

func TestSaveInvalidPayload(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out")

	p := NewPersister()
	_, err := p.Save("not!!valid@@base64", target, "png")
	if err == nil {
		t.Fatal("Expected error for invalid base64")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeDecodeFailure) {
		t.Errorf("Expected DECODE_FAILURE error, got %v", err)
	}

	// A decode failure must not create a file
	if _, statErr := os.Stat(target + ".png"); !os.IsNotExist(statErr) {
		t.Error("Decode failure should not create a file")
	}
}

func TestSaveDefaultPath(t *testing.T) {
	tmpDir := t.TempDir()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origWd)

	payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

	p := NewPersister()
	resolved, err := p.Save(payload, "", "jpg")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if filepath.Base(resolved) != "default_image.jpg" {
		t.Errorf("Expected default_image.jpg, got '%s'", filepath.Base(resolved))
	}
	if _, err := os.Stat(resolved); err != nil {
		t.Errorf("Default file not created: %v", err)
	}
}

func TestSaveDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

	p := NewGalleryPersister(tmpDir)
	resolved, err := p.Save(payload, "", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "default_image.png")
	if resolved != expected {
		t.Errorf("Expected '%s', got '%s'", expected, resolved)
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "nested", "deeper", "art")
	payload := base64.StdEncoding.EncodeToString([]byte("img"))

	p := NewPersister()
	resolved, err := p.Save(payload, target, "png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(resolved); err != nil {
		t.Errorf("File not created in nested directory: %v", err)
	}
}

func TestSaveExtensionCaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "ART.PNG")
	payload := base64.StdEncoding.EncodeToString([]byte("img"))

	p := NewPersister()
	resolved, err := p.Save(payload, target, "png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if resolved != target {
		t.Errorf("Extension should not be appended twice, got '%s'", resolved)
	}
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "art.png")
	if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	payload := base64.StdEncoding.EncodeToString([]byte("new"))
	p := NewPersister()
	if _, err := p.Save(payload, target, "png"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("Expected file to be overwritten, got %q", data)
	}
}

func TestDecodeDataURIPrefix(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("img"))

	data, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(data) != "img" {
		t.Errorf("Expected 'img', got %q", data)
	}
}

func TestDecodeIgnoresWhitespace(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("pixeldata"), 20))

	// Wrap the way MIME encoders do
	var wrapped strings.Builder
	for i := 0; i < len(encoded); i += 60 {
		end := i + 60
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[i:end])
		wrapped.WriteString("\n")
	}

	data, err := Decode(wrapped.String())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(data, bytes.Repeat([]byte("pixeldata"), 20)) {
		t.Error("Decoded bytes do not match original")
	}
}

func TestResolve(t *testing.T) {
	p := NewGalleryPersister("/gallery")

	cases := []struct {
		name     string
		path     string
		format   string
		expected string
	}{
		{"empty path uses default dir", "", "png", "/gallery/default_image.png"},
		{"missing extension appended", "/tmp/out", "png", "/tmp/out.png"},
		{"matching extension kept", "/tmp/out.png", "png", "/tmp/out.png"},
		{"other extension still appended", "/tmp/out.jpg", "png", "/tmp/out.jpg.png"},
		{"empty format defaults to png", "/tmp/out", "", "/tmp/out.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := p.Resolve(tc.path, tc.format)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if resolved != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, resolved)
			}
		})
	}
}
