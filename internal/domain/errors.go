package domain

import "errors"

// Authentication failures. Every provider error code is translated to
// exactly one of these before leaving the gateway; unmapped codes become
// ErrUnknown and are logged with the original code.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrUnknown            = errors.New("authentication failed")
)

// Federated sign-in failures. Low severity: the user can retry the flow.
var (
	ErrPopupBlocked   = errors.New("provider requires an interactive redirect")
	ErrPopupCancelled = errors.New("federated sign-in was cancelled")
)

// External service failures.
var (
	ErrNetworkFailure   = errors.New("identity provider unreachable")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrPermissionDenied = errors.New("profile write rejected")
)

// Input validation failures raised before the provider is called.
var (
	ErrNameRequired = errors.New("name is required")
)

// Session lifecycle failures.
var (
	ErrNoActiveSession   = errors.New("no active session")
	ErrTokenGeneration   = errors.New("token generation failed")
	ErrCSRFSecretMissing = errors.New("CSRF secret not configured")
)
