package usecase

import (
	"context"

	"session-hub/internal/domain"
)

// mockGateway implements domain.IdentityGateway for testing.
type mockGateway struct {
	signInIdentity    *domain.Identity
	signInErr         error
	createIdentity    *domain.Identity
	createErr         error
	createCalled      bool
	displayNameErr    error
	displayNames      map[string]string
	federatedIdentity *domain.Identity
	federatedErr      error
	signOutErr        error
	signOutCalls      int
	signOutToken      string
	events            chan domain.SessionEvent
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		displayNames: make(map[string]string),
		events:       make(chan domain.SessionEvent, 4),
	}
}

func (g *mockGateway) SignInCredential(_ context.Context, _, _ string) (*domain.Identity, error) {
	return g.signInIdentity, g.signInErr
}

func (g *mockGateway) CreateCredential(_ context.Context, _, _ string) (*domain.Identity, error) {
	g.createCalled = true
	return g.createIdentity, g.createErr
}

func (g *mockGateway) SignInFederated(_ context.Context) (*domain.Identity, error) {
	return g.federatedIdentity, g.federatedErr
}

func (g *mockGateway) UpdateDisplayName(_ context.Context, subjectID, name string) error {
	if g.displayNameErr != nil {
		return g.displayNameErr
	}
	g.displayNames[subjectID] = name
	return nil
}

func (g *mockGateway) SignOut(_ context.Context, token string) error {
	g.signOutCalls++
	g.signOutToken = token
	return g.signOutErr
}

func (g *mockGateway) SessionChanges(_ context.Context) (<-chan domain.SessionEvent, error) {
	return g.events, nil
}

// mockStore implements domain.ProfileStore with map-backed merge writes.
type mockStore struct {
	docs      map[string]*domain.User
	getErr    error
	upsertErr error
	upserts   []map[string]any
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string]*domain.User)}
}

func (s *mockStore) UpsertMerge(_ context.Context, id string, fields map[string]any) error {
	s.upserts = append(s.upserts, fields)
	if s.upsertErr != nil {
		return s.upsertErr
	}
	doc, ok := s.docs[id]
	if !ok {
		doc = &domain.User{ID: id}
		s.docs[id] = doc
	}
	for key, value := range fields {
		str, _ := value.(string)
		switch key {
		case "name":
			doc.Name = str
		case "email":
			doc.Email = str
		case "role":
			doc.Role = domain.Role(str)
		case "phone":
			doc.Phone = str
		case "crm":
			doc.CRM = str
		case "specialty":
			doc.Specialty = str
		case "avatar":
			doc.Avatar = str
		}
	}
	return nil
}

func (s *mockStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

// mockCache implements domain.ProfileCache for testing.
type mockCache struct {
	entries map[string]domain.User
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.User)}
}

func (c *mockCache) Get(id string) (*domain.User, bool) {
	user, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return &user, true
}

func (c *mockCache) Set(id string, user domain.User) {
	c.entries[id] = user
}

func (c *mockCache) Invalidate(id string) {
	delete(c.entries, id)
}
