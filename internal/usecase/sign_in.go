package usecase

import (
	"context"
	"time"

	"session-hub/internal/domain"

	"github.com/google/uuid"
)

// SignIn authenticates an email/password credential and publishes a user
// assembled from provider claims. Role and crm live in the stored profile
// and are reconciled only on session restore, not here: a hospital account
// signing in via this path is published as doctor until the next restore.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	attempt := uuid.NewString()
	m.beginAuth()

	started := time.Now()
	identity, err := m.gateway.SignInCredential(ctx, email, password)
	m.metrics.RecordProviderLatency("sign_in", time.Since(started))
	if err != nil {
		m.settleFailure()
		m.metrics.RecordSignIn("failure")
		m.logger.WarnContext(ctx, "credential sign-in rejected",
			"attempt_id", attempt, "error", err)
		return nil, err
	}

	user := domain.FromClaims(identity)
	m.publish(user, identity.SessionToken)
	m.metrics.RecordSignIn("success")
	m.logger.InfoContext(ctx, "credential sign-in completed",
		"attempt_id", attempt, "user_id", user.ID)
	return user, nil
}
