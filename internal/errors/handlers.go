package errors

import (
	"fmt"
	"os"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError formats the error for terminal display and logs it to stderr
// when verbose output is enabled
func (h *CLIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}

	appErr := GetAppError(err)
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", appErr.Severity, appErr.Code, appErr.Message)
		if appErr.Cause != nil {
			fmt.Fprintf(os.Stderr, "  caused by: %v\n", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(err))
}

// FormatError renders an error as a single human-readable line
func (h *CLIErrorHandler) FormatError(err error) string {
	if err == nil {
		return ""
	}

	appErr := GetAppError(err)
	msg := appErr.Message
	if appErr.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, appErr.Details)
	}
	if h.Verbose && appErr.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, appErr.Cause)
	}

	return msg
}

// SeverityIcon returns a terminal-friendly marker for an error severity,
// used by the TUI status bar
func SeverityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityInfo:
		return "i"
	case SeverityWarning:
		return "!"
	case SeverityCritical:
		return "!!"
	default:
		return "✗"
	}
}
