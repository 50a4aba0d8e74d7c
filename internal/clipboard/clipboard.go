// Package clipboard copies text to the system clipboard by shelling out to
// the platform utility (pbcopy, xclip/xsel/wl-copy, clip).
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// candidate is a clipboard utility to try on the current platform
type candidate struct {
	name string
	args []string
}

// candidates returns the clipboard utilities for the current platform, in
// preference order
func candidates() []candidate {
	switch runtime.GOOS {
	case "darwin":
		return []candidate{{name: "pbcopy"}}
	case "linux":
		return []candidate{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
	case "windows":
		return []candidate{{name: "cmd", args: []string{"/c", "clip"}}}
	default:
		return nil
	}
}

// ClipboardError reports that no clipboard utility is available
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a ClipboardError with installation hints
func NewClipboardError() *ClipboardError {
	var msg string
	switch runtime.GOOS {
	case "linux":
		msg = "no clipboard utility found. Install xclip, xsel, or wl-clipboard"
	case "darwin":
		msg = "pbcopy not available (this should not happen on macOS)"
	case "windows":
		msg = "clip command not available (this should not happen on Windows)"
	default:
		msg = fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}

	return &ClipboardError{
		OS:      runtime.GOOS,
		Message: msg,
	}
}

// Copy copies text to the system clipboard
func Copy(text string) error {
	cands := candidates()
	if cands == nil {
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	var lastErr error
	tried := false
	for _, c := range cands {
		if !isCommandAvailable(c.name) {
			continue
		}
		tried = true

		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("%s failed: %w", c.name, err)
		}
	}

	if tried && lastErr != nil {
		return fmt.Errorf("clipboard utilities available but failed: %w", lastErr)
	}

	return NewClipboardError()
}

// CopyWithFallback attempts to copy to clipboard and returns a status message
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		var clipErr *ClipboardError
		if errors.As(err, &clipErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsClipboardAvailable checks if clipboard functionality is available
func IsClipboardAvailable() bool {
	for _, c := range candidates() {
		if isCommandAvailable(c.name) {
			return true
		}
	}
	return runtime.GOOS == "windows"
}

// isCommandAvailable checks if a command is available in PATH
func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
