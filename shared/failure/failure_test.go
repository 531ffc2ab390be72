package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"travelbook/shared/failure"
)

func TestFailureConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("type must be one of: hotel, bus"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "type must be one of: hotel, bus",
		},
		{
			name:     "bad request from error",
			err:      failure.BadRequest(errors.New("failed to decode request body")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "failed to decode request body",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("authentication required"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "authentication required",
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("access denied"),
			wantCode: http.StatusForbidden,
			wantMsg:  "access denied",
		},
		{
			name:     "not found",
			err:      failure.NotFound("booking not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "booking not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("Service is no longer available"),
			wantCode: http.StatusConflict,
			wantMsg:  "Service is no longer available",
		},
		{
			name:     "unavailable",
			err:      failure.Unavailable("storage unavailable"),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "storage unavailable",
		},
		{
			name:     "internal error",
			err:      failure.InternalError(errors.New("boom")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected an error")
			}

			if got := failure.GetCode(tt.err); got != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, got)
			}

			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestNilErrorsReturnNil(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCodeOnWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("failed to cancel booking: %w", failure.NotFound("booking not found"))

	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, got)
	}
}

func TestGetCodeOnPlainError(t *testing.T) {
	if got := failure.GetCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, got)
	}
}
