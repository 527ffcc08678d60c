// internal/core/errors_test.go
package core

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrUnknownProvider, ErrUnknownProvider) {
		t.Error("same error should match")
	}
	if errors.Is(ErrProviderRejected, ErrProviderUnavailable) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrProviderUnavailable, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrProviderUnavailable.Code {
		t.Error("code not preserved")
	}
	if !errors.Is(wrapped, ErrProviderUnavailable) {
		t.Error("wrapped error should match its base by code")
	}
}

func TestWrapError_ChainedCause(t *testing.T) {
	inner := WrapError(ErrProviderRejected, errors.New("quota exceeded"))
	outer := WrapError(ErrChatFailed, inner)
	if !errors.Is(outer, ErrChatFailed) {
		t.Error("outer code should match")
	}
	if !errors.Is(outer, ErrProviderRejected) {
		t.Error("cause classification should survive wrapping")
	}
}
