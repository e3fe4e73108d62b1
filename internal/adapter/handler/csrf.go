package handler

import (
	"log/slog"
	"net/http"

	"session-hub/internal/domain"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CSRFHandler handles CSRF token requests for the active session.
type CSRFHandler struct {
	manager *usecase.SessionManager
	gen     domain.CSRFTokenGenerator
}

// NewCSRFHandler creates a new CSRF handler.
func NewCSRFHandler(manager *usecase.SessionManager, gen domain.CSRFTokenGenerator) *CSRFHandler {
	return &CSRFHandler{manager: manager, gen: gen}
}

// csrfResponse represents the CSRF token response.
type csrfResponse struct {
	Data struct {
		CSRFToken string `json:"csrf_token"`
	} `json:"data"`
}

// Handle processes CSRF token requests. Tokens are bound to the provider
// session token, so they invalidate with the session.
func (h *CSRFHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	sessionToken := h.manager.Token()
	if sessionToken == "" {
		slog.WarnContext(ctx, "csrf token requested without an active session")
		return mapDomainError(domain.ErrNoActiveSession)
	}

	token, err := h.gen.Generate(sessionToken)
	if err != nil {
		return mapDomainError(err)
	}

	// Log only a prefix of the session token
	prefix := sessionToken
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	slog.InfoContext(ctx, "csrf token generated", "session_prefix", prefix)

	resp := csrfResponse{}
	resp.Data.CSRFToken = token
	return c.JSON(http.StatusOK, resp)
}
