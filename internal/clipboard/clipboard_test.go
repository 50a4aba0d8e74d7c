package clipboard

import (
	"errors"
	"runtime"
	"testing"
)

func TestClipboardError(t *testing.T) {
	err := NewClipboardError()

	if err.OS != runtime.GOOS {
		t.Errorf("Expected OS to be %s, got %s", runtime.GOOS, err.OS)
	}

	if err.Error() == "" {
		t.Error("Error message should not be empty")
	}

	var clipErr *ClipboardError
	if !errors.As(err, &clipErr) {
		t.Error("Should be able to unwrap as ClipboardError")
	}
}

func TestCandidatesForPlatform(t *testing.T) {
	cands := candidates()

	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		if len(cands) == 0 {
			t.Errorf("Expected clipboard candidates on %s", runtime.GOOS)
		}
	default:
		if cands != nil {
			t.Errorf("Expected no candidates on %s", runtime.GOOS)
		}
	}
}

func TestIsClipboardAvailable(t *testing.T) {
	// Result varies by platform and installed utilities, but the call
	// should not panic
	available := IsClipboardAvailable()

	if runtime.GOOS == "darwin" && !available {
		t.Error("Clipboard should be available on macOS")
	}

	_ = available
}
