package errs

import (
	"net/http"
	"strings"
	"testing"
)

func TestNewErrorMapsStatus(t *testing.T) {
	tests := []struct {
		code       int
		wantStatus int
	}{
		{ErrMissingFields, http.StatusBadRequest},
		{ErrPasswordTooShort, http.StatusBadRequest},
		{ErrEmailAlreadyRegistered, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrSessionNotFound, http.StatusNotFound},
		{ErrStorageFailure, http.StatusInternalServerError},
		{ErrUnknown, http.StatusInternalServerError},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		customErr := NewError(tt.code)
		if customErr.Code != tt.code {
			t.Errorf("NewError(%d).Code = %d", tt.code, customErr.Code)
		}
		if customErr.Status != tt.wantStatus {
			t.Errorf("NewError(%d).Status = %d, want %d", tt.code, customErr.Status, tt.wantStatus)
		}
		if customErr.Message == "" {
			t.Errorf("NewError(%d) has empty message", tt.code)
		}
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	customErr := NewError(999999)
	if customErr.Code != ErrUnknown {
		t.Errorf("unknown code should fall back to ErrUnknown, got %d", customErr.Code)
	}
}

func TestErrorStringFormat(t *testing.T) {
	customErr := NewError(ErrUnauthorized)
	s := customErr.Error()

	if !strings.Contains(s, "3005") || !strings.Contains(s, "401") {
		t.Errorf("Error() missing code or status: %q", s)
	}
}
