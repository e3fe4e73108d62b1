package handler

import (
	"net/http"

	"session-hub/internal/catalog"
	"session-hub/internal/domain"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the role-gated dashboard listings.
type CatalogHandler struct {
	manager *usecase.SessionManager
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(manager *usecase.SessionManager, cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{manager: manager, catalog: cat}
}

// HandleShifts processes GET /shifts. Doctors see the open listings,
// hospitals see their own shifts.
func (h *CatalogHandler) HandleShifts(c echo.Context) error {
	user, _ := h.manager.Current()
	if user == nil {
		return mapDomainError(domain.ErrNoActiveSession)
	}

	switch user.Role {
	case domain.RoleDoctor, domain.RoleAdmin:
		return c.JSON(http.StatusOK, h.catalog.OpenShifts())
	case domain.RoleHospital:
		return c.JSON(http.StatusOK, h.catalog.ShiftsByHospital(user.ID))
	default:
		return mapDomainError(domain.ErrPermissionDenied)
	}
}

// HandleCandidatures processes GET /candidatures, a doctor-only view of
// the caller's own applications.
func (h *CatalogHandler) HandleCandidatures(c echo.Context) error {
	user, _ := h.manager.Current()
	if user == nil {
		return mapDomainError(domain.ErrNoActiveSession)
	}
	if user.Role != domain.RoleDoctor && user.Role != domain.RoleAdmin {
		return mapDomainError(domain.ErrPermissionDenied)
	}
	return c.JSON(http.StatusOK, h.catalog.CandidaturesByUser(user.ID))
}
