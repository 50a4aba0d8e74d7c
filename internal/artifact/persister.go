// Package artifact persists base64-encoded image payloads to disk.
package artifact

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptbrush/promptbrush/internal/errors"
)

// DefaultFormat is the format tag used when the caller supplies none
const DefaultFormat = "png"

// DefaultBaseName is the file name used when the caller supplies no path
const DefaultBaseName = "default_image"

// Persister decodes base64 image payloads and writes them to disk
type Persister struct {
	// DefaultDir receives artifacts saved without an explicit path. When
	// empty, the current working directory is used.
	DefaultDir string
}

// NewPersister creates a persister that defaults to the working directory
func NewPersister() *Persister {
	return &Persister{}
}

// NewGalleryPersister creates a persister that defaults into a gallery
// directory
func NewGalleryPersister(dir string) *Persister {
	return &Persister{DefaultDir: dir}
}

// Save decodes payload and writes the bytes to path, deriving a default
// path when none is given and appending the format extension when the path
// lacks it. It returns the resolved path of the written file. A decode
// failure creates no file.
func (p *Persister) Save(payload, path, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}

	data, err := Decode(payload)
	if err != nil {
		return "", err
	}

	resolved, err := p.Resolve(path, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return "", errors.IOError("create parent directories", err).WithContext("path", resolved)
	}

	if err := os.WriteFile(resolved, data, 0644); err != nil {
		return "", errors.IOError("write image file", err).WithContext("path", resolved)
	}

	return resolved, nil
}

// Decode decodes a base64 payload into raw bytes. An optional data-URI
// prefix ("data:image/png;base64,") is stripped, and whitespace is ignored
// the way lenient encoders emit it.
func Decode(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}

	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.DecodeError(err)
	}
	return data, nil
}

// Resolve applies default-path derivation and extension-appending to
// produce the final destination path
func (p *Persister) Resolve(path, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}

	if path == "" {
		dir := p.DefaultDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", errors.IOError("determine working directory", err)
			}
			dir = cwd
		}
		path = filepath.Join(dir, DefaultBaseName)
	}

	ext := "." + format
	if !strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		path += ext
	}

	return path, nil
}
