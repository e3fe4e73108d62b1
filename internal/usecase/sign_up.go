package usecase

import (
	"context"
	"time"

	"session-hub/internal/domain"

	"github.com/google/uuid"
)

// SignUp creates a credential with the provider, sets the display name on
// the new identity, persists a doctor profile document and publishes the
// user. A profile-write failure after the identity was created surfaces to
// the caller without rolling the identity back: an identity with no
// profile document is an accepted state, repaired lazily by session
// restore synthesizing a fallback profile from claims.
func (m *SessionManager) SignUp(ctx context.Context, email, password, name, crm string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if password == "" {
		return nil, domain.ErrWeakPassword
	}
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	attempt := uuid.NewString()
	m.beginAuth()

	started := time.Now()
	identity, err := m.gateway.CreateCredential(ctx, email, password)
	m.metrics.RecordProviderLatency("sign_up", time.Since(started))
	if err != nil {
		m.settleFailure()
		m.metrics.RecordSignUp("failure")
		m.logger.WarnContext(ctx, "credential creation rejected",
			"attempt_id", attempt, "error", err)
		return nil, err
	}

	if err := m.gateway.UpdateDisplayName(ctx, identity.SubjectID, name); err != nil {
		m.settleFailure()
		m.metrics.RecordSignUp("failure")
		m.logger.ErrorContext(ctx, "display name update failed after identity creation",
			"attempt_id", attempt, "user_id", identity.SubjectID, "error", err)
		return nil, err
	}

	user := &domain.User{
		ID:    identity.SubjectID,
		Name:  name,
		Email: email,
		Role:  domain.RoleDoctor,
		Phone: "",
		CRM:   crm,
	}

	if err := m.profiles.UpsertMerge(ctx, user.ID, profileFields(user)); err != nil {
		m.settleFailure()
		m.metrics.RecordSignUp("failure")
		m.metrics.RecordProfileWriteFailure()
		m.logger.ErrorContext(ctx, "profile write failed after identity creation",
			"attempt_id", attempt, "user_id", user.ID, "error", err)
		return nil, err
	}

	m.cache.Invalidate(user.ID)
	m.publish(user, identity.SessionToken)
	m.metrics.RecordSignUp("success")
	m.logger.InfoContext(ctx, "sign-up completed",
		"attempt_id", attempt, "user_id", user.ID)
	return user, nil
}

// profileFields flattens a user into the free-form document fields the
// profile store merges. Timestamps are owned by the store, never written
// through this map.
func profileFields(u *domain.User) map[string]any {
	fields := map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
		"phone": u.Phone,
	}
	if u.CRM != "" {
		fields["crm"] = u.CRM
	}
	if u.Specialty != "" {
		fields["specialty"] = u.Specialty
	}
	if u.Avatar != "" {
		fields["avatar"] = u.Avatar
	}
	return fields
}
