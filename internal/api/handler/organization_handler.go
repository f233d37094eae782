package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// OrganizationHandler handles HTTP requests for organizations.
type OrganizationHandler struct {
	service ports.CoachingService
}

func NewOrganizationHandler(service ports.CoachingService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// List returns the organizations the caller belongs to.
//
// @Summary      List my organizations
// @Tags         organizations
// @Produce      json
// @Success      200  {array}   domain.Organization
// @Failure      401  {object}  map[string]string
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	orgs, err := h.service.Organizations(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orgs)
}

// Get returns one organization by id.
//
// @Summary      Get an organization
// @Tags         organizations
// @Produce      json
// @Param        id   path      string  true  "Organization id"
// @Success      200  {object}  domain.Organization
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a valid id")
	}

	org, err := h.service.Organization(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, org)
}
