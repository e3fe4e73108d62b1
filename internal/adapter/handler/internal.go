package handler

import (
	"log/slog"
	"net/http"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// InternalHandler handles internal service-to-service requests. Routes
// using it sit behind the shared-secret middleware.
type InternalHandler struct {
	profiles domain.ProfileStore
}

// NewInternalHandler creates a new internal handler.
func NewInternalHandler(profiles domain.ProfileStore) *InternalHandler {
	return &InternalHandler{profiles: profiles}
}

// HandleProfile returns the stored profile document for a subject id.
func (h *InternalHandler) HandleProfile(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errorPayload{Error: "profile id required"})
	}

	user, err := h.profiles.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "internal profile read failed",
			"profile_id", id, "remote_addr", c.RealIP(), "error", err)
		return mapDomainError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, errorPayload{Error: "profile not found"})
	}

	slog.InfoContext(ctx, "internal profile fetched", "profile_id", id, "remote_addr", c.RealIP())
	return c.JSON(http.StatusOK, user)
}
