package domain

import "context"

// SessionEvent is one observation of the provider's session state. A nil
// Identity means no active session.
type SessionEvent struct {
	Identity *Identity
}

// IdentityGateway wraps the external identity provider. Every call may
// fail independently; no call is atomic with any other.
type IdentityGateway interface {
	CreateCredential(ctx context.Context, email, password string) (*Identity, error)
	SignInCredential(ctx context.Context, email, password string) (*Identity, error)
	SignInFederated(ctx context.Context) (*Identity, error)
	UpdateDisplayName(ctx context.Context, subjectID, name string) error
	SignOut(ctx context.Context, sessionToken string) error
	SessionChanges(ctx context.Context) (<-chan SessionEvent, error)
}

// ProfileStore is the external document store keyed by subject id.
type ProfileStore interface {
	// UpsertMerge merges fields into the document, creating it when
	// absent. updated_at is set on every write, created_at on the first.
	UpsertMerge(ctx context.Context, id string, fields map[string]any) error
	// GetByID returns the stored profile, or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*User, error)
}

// ProfileCache provides read-through caching of profile documents for the
// session-restore watcher.
type ProfileCache interface {
	Get(id string) (*User, bool)
	Set(id string, user User)
	Invalidate(id string)
}

// TokenIssuer mints signed dashboard tokens for the published user.
type TokenIssuer interface {
	IssueDashboardToken(user *User, sessionToken string) (string, error)
}

// CSRFTokenGenerator generates CSRF tokens from session identifiers.
type CSRFTokenGenerator interface {
	Generate(sessionID string) (string, error)
}
