package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrInternalServer, cause)

	if !stderrors.Is(err, ErrInternalServer) {
		t.Error("wrapped error should match its sentinel")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should expose its cause")
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.StatusCode)
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "date is required")
	if err.Message != "date is required" || err.Code != "INVALID_INPUT" {
		t.Errorf("unexpected error %+v", err)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated")
	}
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("custom message should still match the sentinel")
	}
	if stderrors.Is(err, ErrNotFound) {
		t.Error("different codes must not match")
	}
}

func TestFrom(t *testing.T) {
	if got := From(ErrDuplicateEmail); got != ErrDuplicateEmail {
		t.Errorf("expected AppError to pass through, got %+v", got)
	}

	wrapped := fmt.Errorf("register: %w", ErrDuplicateEmail)
	if got := From(wrapped); got.Code != "DUPLICATE_EMAIL" {
		t.Errorf("expected wrapped AppError to be found, got %s", got.Code)
	}

	got := From(fmt.Errorf("boom"))
	if got.Code != "INTERNAL_ERROR" || got.Internal == nil {
		t.Errorf("expected internal error wrapping the cause, got %+v", got)
	}
}

func TestBody(t *testing.T) {
	body := ErrCategoryTypeMismatch.Body()
	if body.Message != ErrCategoryTypeMismatch.Message {
		t.Errorf("unexpected top-level message %q", body.Message)
	}
	if body.Error.Code != "CATEGORY_TYPE_MISMATCH" {
		t.Errorf("unexpected code %q", body.Error.Code)
	}
}
