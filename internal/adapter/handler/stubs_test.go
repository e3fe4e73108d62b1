package handler

import (
	"context"
	"log/slog"
	"testing"

	"session-hub/internal/domain"
	"session-hub/internal/usecase"

	"github.com/stretchr/testify/require"
)

// stubGateway drives the session manager into known states for handler
// tests.
type stubGateway struct {
	identity   *domain.Identity
	signInErr  error
	signOutErr error
}

func (g *stubGateway) SignInCredential(context.Context, string, string) (*domain.Identity, error) {
	return g.identity, g.signInErr
}

func (g *stubGateway) CreateCredential(context.Context, string, string) (*domain.Identity, error) {
	return g.identity, g.signInErr
}

func (g *stubGateway) SignInFederated(context.Context) (*domain.Identity, error) {
	return g.identity, g.signInErr
}

func (g *stubGateway) UpdateDisplayName(context.Context, string, string) error { return nil }

func (g *stubGateway) SignOut(context.Context, string) error { return g.signOutErr }

func (g *stubGateway) SessionChanges(context.Context) (<-chan domain.SessionEvent, error) {
	ch := make(chan domain.SessionEvent)
	close(ch)
	return ch, nil
}

type stubStore struct {
	users  map[string]*domain.User
	getErr error
}

func (s *stubStore) UpsertMerge(context.Context, string, map[string]any) error { return nil }

func (s *stubStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.users[id], nil
}

type stubCache struct{}

func (stubCache) Get(string) (*domain.User, bool) { return nil, false }
func (stubCache) Set(string, domain.User)         {}
func (stubCache) Invalidate(string)               {}

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) IssueDashboardToken(*domain.User, string) (string, error) {
	return s.token, s.err
}

func newTestManager(gw domain.IdentityGateway) *usecase.SessionManager {
	return usecase.NewSessionManager(gw, &stubStore{}, stubCache{}, nil, slog.Default())
}

// authenticatedManager returns a manager whose slot holds the claims of
// the given identity, seeded through a credential sign-in.
func authenticatedManager(t *testing.T, identity *domain.Identity) *usecase.SessionManager {
	t.Helper()
	m := newTestManager(&stubGateway{identity: identity})
	_, err := m.SignIn(context.Background(), identity.Email, "secret-pw")
	require.NoError(t, err)
	return m
}
