package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignOut invalidates the provider session and publishes nil exactly once.
// Calling it while already anonymous is a no-op. When the provider rejects
// the logout the slot is left authenticated rather than optimistically
// cleared, so the published state never claims "logged out" while the
// provider still holds a session.
func (m *SessionManager) SignOut(ctx context.Context) error {
	m.mu.RLock()
	current := m.current
	token := m.sessionToken
	m.mu.RUnlock()

	if current == nil {
		return nil
	}

	attempt := uuid.NewString()

	started := time.Now()
	err := m.gateway.SignOut(ctx, token)
	m.metrics.RecordProviderLatency("sign_out", time.Since(started))
	if err != nil {
		m.metrics.RecordSignOut("failure")
		m.logger.ErrorContext(ctx, "provider sign-out failed",
			"attempt_id", attempt, "user_id", current.ID, "error", err)
		return err
	}

	m.cache.Invalidate(current.ID)
	m.publish(nil, "")
	m.metrics.RecordSignOut("success")
	m.logger.InfoContext(ctx, "signed out",
		"attempt_id", attempt, "user_id", current.ID)
	return nil
}
