package handler

import (
	"net/http"

	"session-hub/internal/domain"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles /session returning the published user for the
// frontend, plus a signed dashboard token while authenticated.
type SessionHandler struct {
	manager *usecase.SessionManager
	issuer  domain.TokenIssuer
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *usecase.SessionManager, issuer domain.TokenIssuer) *SessionHandler {
	return &SessionHandler{manager: manager, issuer: issuer}
}

// sessionResponse represents the JSON response structure. User is null
// while anonymous; Loading is true until the first restore event settles.
type sessionResponse struct {
	OK             bool         `json:"ok"`
	Loading        bool         `json:"loading"`
	User           *domain.User `json:"user"`
	DashboardToken string       `json:"dashboardToken,omitempty"`
}

// Handle processes the /session endpoint and returns JSON.
func (h *SessionHandler) Handle(c echo.Context) error {
	user, loading := h.manager.Current()

	resp := sessionResponse{OK: true, Loading: loading, User: user}
	if user != nil {
		token, err := h.issuer.IssueDashboardToken(user, h.manager.Token())
		if err != nil {
			return mapDomainError(err)
		}
		resp.DashboardToken = token
	}
	return c.JSON(http.StatusOK, resp)
}
