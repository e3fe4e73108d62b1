package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"session-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// Config holds the Kratos endpoints and flow settings.
type Config struct {
	BaseURL      string        // Frontend API (public, port 4433)
	AdminBaseURL string        // Admin API (port 4434)
	OIDCProvider string        // provider id for federated sign-in, e.g. "google"
	Timeout      time.Duration // per-call HTTP timeout
	PollInterval time.Duration // session watch poll interval
}

// KratosGateway implements domain.IdentityGateway against Ory Kratos
// native self-service flows.
type KratosGateway struct {
	client     *kratos.APIClient
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	// last session token seen by this gateway; feeds the session watcher
	// and the logout fallback
	mu    sync.Mutex
	token string
}

// NewKratosGateway creates a gateway with tuned HTTP transport.
func NewKratosGateway(cfg Config, logger *slog.Logger) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: cfg.BaseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	configuration.HTTPClient = httpClient

	return &KratosGateway{
		client:     kratos.NewAPIClient(configuration),
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SignInCredential runs a native login flow with the password method.
func (g *KratosGateway) SignInCredential(ctx context.Context, email, password string) (*domain.Identity, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, g.translate(ctx, err, resp)
	}

	body := kratos.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Method:     "password",
		Password:   password,
	}
	success, resp, err := g.client.FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratos.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, g.translate(ctx, err, resp)
	}

	identity := identityFromSession(&success.Session, success.GetSessionToken())
	g.setToken(identity.SessionToken)
	return identity, nil
}

// CreateCredential runs a native registration flow with the password
// method. The display name is set afterwards via UpdateDisplayName; the
// registration traits carry the email only.
func (g *KratosGateway) CreateCredential(ctx context.Context, email, password string) (*domain.Identity, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, g.translate(ctx, err, resp)
	}

	body := kratos.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   map[string]interface{}{"email": email},
	}
	success, resp, err := g.client.FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratos.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, g.translate(ctx, err, resp)
	}

	token := success.GetSessionToken()
	identity := identityFromKratos(&success.Identity, token)
	g.setToken(token)
	return identity, nil
}

// SignInFederated runs a native login flow with the oidc method. Kratos
// answering with a browser-redirect demand surfaces as ErrPopupBlocked;
// an expired or aborted flow surfaces as ErrPopupCancelled.
func (g *KratosGateway) SignInFederated(ctx context.Context) (*domain.Identity, error) {
	flow, resp, err := g.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, g.translate(ctx, err, resp)
	}

	body := kratos.UpdateLoginFlowWithOidcMethod{
		Method:   "oidc",
		Provider: g.cfg.OIDCProvider,
	}
	success, resp, err := g.client.FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratos.UpdateLoginFlowWithOidcMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, g.translateFederated(ctx, err, resp)
	}

	identity := identityFromSession(&success.Session, success.GetSessionToken())
	g.setToken(identity.SessionToken)
	return identity, nil
}

// UpdateDisplayName patches the name trait through the Admin API.
func (g *KratosGateway) UpdateDisplayName(ctx context.Context, subjectID, name string) error {
	if g.cfg.AdminBaseURL == "" {
		return fmt.Errorf("%w: admin API not configured", domain.ErrNetworkFailure)
	}

	patch := []map[string]any{
		{"op": "replace", "path": "/traits/name", "value": name},
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnknown, err)
	}

	url := fmt.Sprintf("%s/admin/identities/%s", g.cfg.AdminBaseURL, subjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json-patch+json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: admin API returned status %d", domain.ErrUnknown, resp.StatusCode)
	}
	return nil
}

// SignOut invalidates the provider session via native logout.
func (g *KratosGateway) SignOut(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		sessionToken = g.currentToken()
	}
	if sessionToken == "" {
		return domain.ErrNoActiveSession
	}

	resp, err := g.client.FrontendAPI.
		PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*kratos.NewPerformNativeLogoutBody(sessionToken)).
		Execute()
	if err != nil {
		return g.translate(ctx, err, resp)
	}

	g.setToken("")
	return nil
}

// SessionChanges emits one event per observed session-state transition.
// The first observation is emitted immediately so consumers can settle
// their initial state; afterwards the provider is polled. The channel
// closes when the context is cancelled.
func (g *KratosGateway) SessionChanges(ctx context.Context) (<-chan domain.SessionEvent, error) {
	interval := g.cfg.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	events := make(chan domain.SessionEvent, 1)
	go func() {
		defer close(events)

		last := "unset"
		observe := func() {
			identity := g.observeSession(ctx)
			subject := ""
			if identity != nil {
				subject = identity.SubjectID
			}
			if subject == last {
				return
			}
			last = subject
			select {
			case events <- domain.SessionEvent{Identity: identity}:
			case <-ctx.Done():
			}
		}

		observe()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observe()
			}
		}
	}()
	return events, nil
}

// observeSession checks the current token against ToSession. Any failure,
// including an invalid or expired session, observes as "no session".
func (g *KratosGateway) observeSession(ctx context.Context) *domain.Identity {
	token := g.currentToken()
	if token == "" {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(callCtx).XSessionToken(token).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			g.setToken("")
			return nil
		}
		g.logger.WarnContext(ctx, "session observation failed", "error", err)
		return nil
	}
	if session.Active != nil && !*session.Active {
		return nil
	}
	if session.Identity == nil {
		return nil
	}
	return identityFromKratos(session.Identity, token)
}

func (g *KratosGateway) setToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *KratosGateway) currentToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// identityFromSession builds claims from an established Kratos session.
func identityFromSession(session *kratos.Session, token string) *domain.Identity {
	if session.Identity == nil {
		return &domain.Identity{SessionToken: token}
	}
	return identityFromKratos(session.Identity, token)
}

// identityFromKratos extracts the claims this service publishes from the
// identity traits. The schema carries flat email/name/avatar traits; a
// structured name ({first, last}) is joined for display.
func identityFromKratos(identity *kratos.Identity, token string) *domain.Identity {
	claims := &domain.Identity{
		SubjectID:    identity.Id,
		SessionToken: token,
	}
	if identity.CreatedAt != nil {
		claims.CreatedAt = *identity.CreatedAt
	}

	traits, ok := identity.Traits.(map[string]interface{})
	if !ok {
		return claims
	}
	if email, ok := traits["email"].(string); ok {
		claims.Email = email
	}
	if avatar, ok := traits["avatar"].(string); ok {
		claims.Avatar = avatar
	}
	switch name := traits["name"].(type) {
	case string:
		claims.DisplayName = name
	case map[string]interface{}:
		first, _ := name["first"].(string)
		last, _ := name["last"].(string)
		claims.DisplayName = joinName(first, last)
	}
	return claims
}

func joinName(first, last string) string {
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
