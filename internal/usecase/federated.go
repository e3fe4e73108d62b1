package usecase

import (
	"context"
	"time"

	"session-hub/internal/domain"

	"github.com/google/uuid"
)

// SignInWithGoogle runs the federated flow and always merge-writes the
// federated claims into the profile store before publishing. The merge is
// not destructive to unrelated fields: an existing document keeps its
// role, phone and crm, only name/email/avatar are overwritten.
func (m *SessionManager) SignInWithGoogle(ctx context.Context) (*domain.User, error) {
	attempt := uuid.NewString()
	m.beginAuth()

	started := time.Now()
	identity, err := m.gateway.SignInFederated(ctx)
	m.metrics.RecordProviderLatency("federated_sign_in", time.Since(started))
	if err != nil {
		m.settleFailure()
		m.metrics.RecordFederated("failure")
		m.logger.WarnContext(ctx, "federated sign-in failed",
			"attempt_id", attempt, "error", err)
		return nil, err
	}

	existing, err := m.profiles.GetByID(ctx, identity.SubjectID)
	if err != nil {
		m.settleFailure()
		m.metrics.RecordFederated("failure")
		m.logger.ErrorContext(ctx, "profile read failed during federated sign-in",
			"attempt_id", attempt, "user_id", identity.SubjectID, "error", err)
		return nil, err
	}

	fields := map[string]any{
		"id":    identity.SubjectID,
		"name":  identity.DisplayName,
		"email": identity.Email,
	}
	if identity.Avatar != "" {
		fields["avatar"] = identity.Avatar
	}
	if existing == nil {
		// first write for this subject: seed the defaults
		fields["role"] = string(domain.RoleDoctor)
		fields["phone"] = ""
	}

	if err := m.profiles.UpsertMerge(ctx, identity.SubjectID, fields); err != nil {
		m.settleFailure()
		m.metrics.RecordFederated("failure")
		m.metrics.RecordProfileWriteFailure()
		m.logger.ErrorContext(ctx, "profile write failed during federated sign-in",
			"attempt_id", attempt, "user_id", identity.SubjectID, "error", err)
		return nil, err
	}

	var user *domain.User
	if existing != nil {
		merged := *existing
		merged.ID = identity.SubjectID
		merged.Name = identity.DisplayName
		merged.Email = identity.Email
		if identity.Avatar != "" {
			merged.Avatar = identity.Avatar
		}
		user = &merged
	} else {
		user = domain.FromClaims(identity)
	}

	m.cache.Invalidate(user.ID)
	m.publish(user, identity.SessionToken)
	m.metrics.RecordFederated("success")
	m.logger.InfoContext(ctx, "federated sign-in completed",
		"attempt_id", attempt, "user_id", user.ID)
	return user, nil
}
