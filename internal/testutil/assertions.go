package testutil

import (
	"errors"
	"testing"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected kind.
func AssertAppError(t *testing.T, err error, expectedKind apperrors.Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with kind %d, got nil", expectedKind)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Kind != expectedKind {
		t.Errorf("expected error kind %d, got %d (message: %s)", expectedKind, appErr.Kind, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
