package handler

import (
	"errors"
	"net/http"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// errorPayload is the JSON body attached to mapped errors. Severity "low"
// marks the retryable federated-flow interruptions so clients can render
// a hint instead of an error banner.
type errorPayload struct {
	Error    string `json:"error"`
	Severity string `json:"severity,omitempty"`
}

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoActiveSession):
		return echo.NewHTTPError(http.StatusUnauthorized,
			errorPayload{Error: "invalid email or password"})

	case errors.Is(err, domain.ErrEmailAlreadyInUse):
		return echo.NewHTTPError(http.StatusConflict,
			errorPayload{Error: "email is already registered"})

	case errors.Is(err, domain.ErrWeakPassword):
		return echo.NewHTTPError(http.StatusUnprocessableEntity,
			errorPayload{Error: "password does not meet the policy"})

	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrNameRequired):
		return echo.NewHTTPError(http.StatusBadRequest,
			errorPayload{Error: err.Error()})

	// Federated-flow interruptions share the 409 status with the email
	// conflict but carry the low severity marker: the user can simply
	// retry.
	case errors.Is(err, domain.ErrPopupBlocked):
		return echo.NewHTTPError(http.StatusConflict,
			errorPayload{Error: "provider requires an interactive redirect", Severity: "low"})
	case errors.Is(err, domain.ErrPopupCancelled):
		return echo.NewHTTPError(http.StatusConflict,
			errorPayload{Error: "federated sign-in was cancelled", Severity: "low"})

	case errors.Is(err, domain.ErrNetworkFailure):
		return echo.NewHTTPError(http.StatusBadGateway,
			errorPayload{Error: "identity provider unavailable"})

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests,
			errorPayload{Error: "rate limit exceeded"})

	case errors.Is(err, domain.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden,
			errorPayload{Error: "operation not permitted"})

	case errors.Is(err, domain.ErrTokenGeneration),
		errors.Is(err, domain.ErrCSRFSecretMissing):
		return echo.NewHTTPError(http.StatusInternalServerError,
			errorPayload{Error: "token generation error"})

	default:
		return echo.NewHTTPError(http.StatusInternalServerError,
			errorPayload{Error: "internal error"})
	}
}
