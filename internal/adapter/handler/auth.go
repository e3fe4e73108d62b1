package handler

import (
	"log/slog"
	"net/http"

	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler exposes the session lifecycle over HTTP.
type AuthHandler struct {
	manager      *usecase.SessionManager
	landingRoute string
}

// NewAuthHandler creates a new auth handler. landingRoute is where a
// completed sign-out redirects to.
func NewAuthHandler(manager *usecase.SessionManager, landingRoute string) *AuthHandler {
	if landingRoute == "" {
		landingRoute = "/"
	}
	return &AuthHandler{manager: manager, landingRoute: landingRoute}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	CRM      string `json:"crm"`
}

// HandleSignIn processes POST /auth/sign-in.
func (h *AuthHandler) HandleSignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorPayload{Error: "invalid request body"})
	}

	user, err := h.manager.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// HandleSignUp processes POST /auth/sign-up.
func (h *AuthHandler) HandleSignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorPayload{Error: "invalid request body"})
	}

	user, err := h.manager.SignUp(c.Request().Context(), req.Email, req.Password, req.Name, req.CRM)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// HandleGoogle processes POST /auth/google, the federated sign-in.
func (h *AuthHandler) HandleGoogle(c echo.Context) error {
	user, err := h.manager.SignInWithGoogle(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// HandleSignOut processes POST /auth/sign-out. A completed sign-out
// redirects to the landing route; a failed one leaves the session as-is
// and surfaces the error.
func (h *AuthHandler) HandleSignOut(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.manager.SignOut(ctx); err != nil {
		return mapDomainError(err)
	}
	slog.InfoContext(ctx, "sign-out completed, redirecting", "location", h.landingRoute)
	return c.Redirect(http.StatusSeeOther, h.landingRoute)
}
