package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"session-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"no active session", domain.ErrNoActiveSession, http.StatusUnauthorized},
		{"email already in use", domain.ErrEmailAlreadyInUse, http.StatusConflict},
		{"weak password", domain.ErrWeakPassword, http.StatusUnprocessableEntity},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"name required", domain.ErrNameRequired, http.StatusBadRequest},
		{"popup blocked", domain.ErrPopupBlocked, http.StatusConflict},
		{"popup cancelled", domain.ErrPopupCancelled, http.StatusConflict},
		{"network failure", domain.ErrNetworkFailure, http.StatusBadGateway},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"permission denied", domain.ErrPermissionDenied, http.StatusForbidden},
		{"token generation", domain.ErrTokenGeneration, http.StatusInternalServerError},
		{"csrf secret missing", domain.ErrCSRFSecretMissing, http.StatusInternalServerError},
		{"unknown sentinel", domain.ErrUnknown, http.StatusInternalServerError},
		{"unexpected error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := mapDomainError(tt.err)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", domain.ErrInvalidCredentials)
	httpErr := mapDomainError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	doubleWrapped := fmt.Errorf("outer: %w", wrapped)
	httpErr2 := mapDomainError(doubleWrapped)
	assert.Equal(t, http.StatusUnauthorized, httpErr2.Code)
}

// Popup-class failures share the 409 status with the email conflict but
// must stay distinguishable via the low severity marker.
func TestMapDomainError_PopupSeverity(t *testing.T) {
	for _, err := range []error{domain.ErrPopupBlocked, domain.ErrPopupCancelled} {
		httpErr := mapDomainError(err)
		assert.Equal(t, http.StatusConflict, httpErr.Code)

		payload, ok := httpErr.Message.(errorPayload)
		require.True(t, ok)
		assert.Equal(t, "low", payload.Severity)
	}

	httpErr := mapDomainError(domain.ErrEmailAlreadyInUse)
	payload, ok := httpErr.Message.(errorPayload)
	require.True(t, ok)
	assert.Empty(t, payload.Severity)
}
