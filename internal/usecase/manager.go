package usecase

import (
	"log/slog"
	"sync"
	"time"

	"session-hub/internal/domain"
)

// State describes where the session manager is in its lifecycle.
type State int

const (
	// StateUnknown holds until the first session-restore event arrives.
	StateUnknown State = iota
	// StateAuthenticating is transient while a sign-in/up call is in flight.
	StateAuthenticating
	// StateAuthenticated means a user is published.
	StateAuthenticated
	// StateAnonymous means no user is published.
	StateAnonymous
)

// Recorder records auth operation outcomes for monitoring.
type Recorder interface {
	RecordSignIn(result string)
	RecordSignUp(result string)
	RecordFederated(result string)
	RecordSignOut(result string)
	RecordRestore(result string)
	RecordProfileWriteFailure()
	RecordProviderLatency(operation string, duration time.Duration)
}

// nopRecorder is used when no collector is wired, e.g. in tests.
type nopRecorder struct{}

func (nopRecorder) RecordSignIn(string)                         {}
func (nopRecorder) RecordSignUp(string)                         {}
func (nopRecorder) RecordFederated(string)                      {}
func (nopRecorder) RecordSignOut(string)                        {}
func (nopRecorder) RecordRestore(string)                        {}
func (nopRecorder) RecordProfileWriteFailure()                  {}
func (nopRecorder) RecordProviderLatency(string, time.Duration) {}

// SessionManager is the single source of truth for who is logged in. It
// owns one mutable slot and orchestrates every transition into and out of
// the authenticated state. Operations are not serialized against each
// other: a SignOut racing an in-flight SignIn leaves the slot set by
// whichever resolves last.
type SessionManager struct {
	gateway  domain.IdentityGateway
	profiles domain.ProfileStore
	cache    domain.ProfileCache
	metrics  Recorder
	logger   *slog.Logger

	mu           sync.RWMutex
	state        State
	current      *domain.User
	sessionToken string
	loading      bool
	subscribers  map[int]chan *domain.User
	nextSubID    int

	firstRestore sync.Once
}

// NewSessionManager creates a session manager in the Unknown state with
// loading true; both settle on the first session-restore event.
func NewSessionManager(gw domain.IdentityGateway, profiles domain.ProfileStore, cache domain.ProfileCache, metrics Recorder, logger *slog.Logger) *SessionManager {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &SessionManager{
		gateway:     gw,
		profiles:    profiles,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		state:       StateUnknown,
		loading:     true,
		subscribers: make(map[int]chan *domain.User),
	}
}

// Current returns the published user (nil when anonymous) and whether the
// manager is still waiting for the first session-restore event.
func (m *SessionManager) Current() (*domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.loading
}

// Token returns the provider session token backing the published user, or
// empty when anonymous.
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionToken
}

// State returns the lifecycle state.
func (m *SessionManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers for published-user updates. The channel holds the
// latest value only; slow consumers miss intermediate states. The returned
// function cancels the subscription.
func (m *SessionManager) Subscribe() (<-chan *domain.User, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	ch := make(chan *domain.User, 1)
	m.subscribers[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(ch)
		}
	}
	return ch, cancel
}

// publish replaces the slot wholesale and notifies subscribers. A non-nil
// user must carry the provider's subject id for the session that produced
// it; callers force user.ID before publishing.
func (m *SessionManager) publish(user *domain.User, sessionToken string) {
	m.mu.Lock()
	m.current = user
	m.sessionToken = sessionToken
	if user != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	subs := make([]chan *domain.User, 0, len(m.subscribers))
	for _, ch := range m.subscribers {
		subs = append(subs, ch)
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- user:
		default:
			// latest-value channel: drop the stale update
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- user:
			default:
			}
		}
	}
}

// beginAuth marks an in-flight sign-in/up call.
func (m *SessionManager) beginAuth() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticating
}

// settleFailure returns the state machine to whatever the slot still
// holds after a failed operation; the slot itself is never touched.
func (m *SessionManager) settleFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
}
