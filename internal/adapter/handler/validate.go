package handler

import (
	"net/http"

	"session-hub/internal/domain"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ValidateHandler handles /validate for nginx auth_request: downstream
// services get the published identity as headers without a body.
type ValidateHandler struct {
	manager *usecase.SessionManager
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(manager *usecase.SessionManager) *ValidateHandler {
	return &ValidateHandler{manager: manager}
}

// Handle processes the /validate endpoint.
func (h *ValidateHandler) Handle(c echo.Context) error {
	user, _ := h.manager.Current()
	if user == nil {
		return mapDomainError(domain.ErrNoActiveSession)
	}

	c.Response().Header().Set("X-User-Id", user.ID)
	c.Response().Header().Set("X-User-Email", user.Email)
	c.Response().Header().Set("X-User-Role", string(user.Role))
	return c.NoContent(http.StatusOK)
}
