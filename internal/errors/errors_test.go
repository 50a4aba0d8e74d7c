package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError(ErrCodeInvalidInput, "bad argument")

	if !strings.Contains(err.Error(), "INVALID_INPUT") {
		t.Errorf("Error string should contain the code, got '%s'", err.Error())
	}

	err = err.WithDetails("pattern must be UTF-8")
	if !strings.Contains(err.Error(), "pattern must be UTF-8") {
		t.Errorf("Error string should contain details, got '%s'", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, ErrCodeIOFailure, "write failed")

	if !stderrors.Is(err, cause) {
		t.Error("Wrapped error should unwrap to its cause")
	}
	if err.Category != CategoryArtifact {
		t.Errorf("Expected artifact category, got '%s'", err.Category)
	}
	if err.Severity != SeverityError {
		t.Errorf("Expected error severity, got '%s'", err.Severity)
	}
}

func TestCategorization(t *testing.T) {
	cases := []struct {
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{ErrCodeInvalidInput, CategoryValidation, SeverityWarning},
		{ErrCodeMissingKey, CategoryValidation, SeverityWarning},
		{ErrCodeRenderFailure, CategoryRendering, SeverityWarning},
		{ErrCodeDecodeFailure, CategoryArtifact, SeverityWarning},
		{ErrCodeIOFailure, CategoryArtifact, SeverityError},
		{ErrCodeNotFound, CategoryStorage, SeverityInfo},
		{ErrCodeInternalError, CategorySystem, SeverityCritical},
	}

	for _, tc := range cases {
		err := NewAppError(tc.code, "test")
		if err.Category != tc.category {
			t.Errorf("%s: expected category %s, got %s", tc.code, tc.category, err.Category)
		}
		if err.Severity != tc.severity {
			t.Errorf("%s: expected severity %s, got %s", tc.code, tc.severity, err.Severity)
		}
	}
}

func TestHasCode(t *testing.T) {
	err := MissingKeyError("subject")

	if !HasCode(err, ErrCodeMissingKey) {
		t.Error("HasCode should match the error's code")
	}
	if HasCode(err, ErrCodeIOFailure) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeMissingKey) {
		t.Error("HasCode should not match a plain error")
	}
}

func TestMissingKeyErrorNamesPlaceholder(t *testing.T) {
	err := MissingKeyError("subject")

	if !strings.Contains(err.Message, "'subject'") {
		t.Errorf("Message should name the placeholder, got '%s'", err.Message)
	}
	if err.Context["placeholder"] != "subject" {
		t.Errorf("Context should carry the placeholder name, got %v", err.Context["placeholder"])
	}
}

func TestGetAppError(t *testing.T) {
	appErr := DecodeError(stderrors.New("illegal base64 data"))
	if got := GetAppError(appErr); got != appErr {
		t.Error("GetAppError should return the same AppError")
	}

	plain := stderrors.New("something broke")
	converted := GetAppError(plain)
	if converted.Code != ErrCodeInternalError {
		t.Errorf("Plain errors should convert to INTERNAL_ERROR, got %s", converted.Code)
	}
	if !stderrors.Is(converted, plain) {
		t.Error("Converted error should wrap the original")
	}
}

func TestCLIErrorHandlerFormat(t *testing.T) {
	handler := NewCLIErrorHandler(false)

	if handler.FormatError(nil) != "" {
		t.Error("Formatting nil should produce an empty string")
	}

	err := IOError("write image file", stderrors.New("permission denied"))
	msg := handler.FormatError(err)
	if !strings.Contains(msg, "write image file") {
		t.Errorf("Formatted message should describe the operation, got '%s'", msg)
	}

	verbose := NewCLIErrorHandler(true)
	msg = verbose.FormatError(err)
	if !strings.Contains(msg, "permission denied") {
		t.Errorf("Verbose message should include the cause, got '%s'", msg)
	}
}
