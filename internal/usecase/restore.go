package usecase

import (
	"context"

	"session-hub/internal/domain"
)

// Run subscribes to the gateway's session-change stream and feeds every
// event through the same publish path as the explicit operations. The
// first event, session or not, settles the loading flag. Run blocks until
// the context is cancelled or the stream closes; it is started once per
// process and never re-established within the manager's lifecycle.
func (m *SessionManager) Run(ctx context.Context) error {
	events, err := m.gateway.SessionChanges(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.handleSessionEvent(ctx, ev)
		}
	}
}

// handleSessionEvent reconciles one provider observation with the stored
// profile and publishes the result.
func (m *SessionManager) handleSessionEvent(ctx context.Context, ev domain.SessionEvent) {
	defer m.firstRestore.Do(func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "session restore settled")
	})

	if ev.Identity == nil {
		m.publish(nil, "")
		m.metrics.RecordRestore("anonymous")
		return
	}

	id := ev.Identity.SubjectID

	if cached, ok := m.cache.Get(id); ok {
		user := *cached
		user.ID = id
		m.publish(&user, ev.Identity.SessionToken)
		m.metrics.RecordRestore("cached")
		return
	}

	user, err := m.profiles.GetByID(ctx, id)
	if err != nil {
		// profile read is best-effort on restore: fall back to claims
		m.logger.WarnContext(ctx, "profile read failed on session restore",
			"user_id", id, "error", err)
		user = nil
	}

	if user == nil {
		// no document yet: synthesize from claims, do not lazy-write it
		user = domain.FromClaims(ev.Identity)
		m.publish(user, ev.Identity.SessionToken)
		m.metrics.RecordRestore("synthesized")
		return
	}

	user.ID = id
	m.cache.Set(id, *user)
	m.publish(user, ev.Identity.SessionToken)
	m.metrics.RecordRestore("hydrated")
}
