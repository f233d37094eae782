package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// RelationshipHandler handles HTTP requests for coaching relationships.
type RelationshipHandler struct {
	service ports.CoachingService
}

func NewRelationshipHandler(service ports.CoachingService) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

type createRelationshipRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid4"`
	CoachID        string `json:"coach_id" validate:"required,uuid4"`
	CoacheeID      string `json:"coachee_id" validate:"required,uuid4"`
}

// List returns the coaching relationships of an organization.
//
// @Summary      List coaching relationships
// @Tags         coaching_relationships
// @Produce      json
// @Param        organization_id  query     string  true  "Organization id"
// @Success      200  {array}   domain.CoachingRelationship
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /coaching_relationships [get]
func (h *RelationshipHandler) List(c echo.Context) error {
	orgID, err := uuid.Parse(c.QueryParam("organization_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "organization_id is not a valid id")
	}

	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	// Only members may list an organization's relationships. Membership is
	// derived from the relationships the caller is a party to.
	orgs, err := h.service.Organizations(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	member := false
	for _, org := range orgs {
		if org.ID == orgID {
			member = true
			break
		}
	}
	if !member {
		return domain.ErrUnauthorized
	}

	rels, err := h.service.RelationshipsByOrganization(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rels)
}

// Get returns one coaching relationship. The ownership middleware has already
// verified the caller is a party to it.
//
// @Summary      Get a coaching relationship
// @Tags         coaching_relationships
// @Produce      json
// @Param        coaching_relationship_id  path      string  true  "Relationship id"
// @Success      200  {object}  domain.CoachingRelationship
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /coaching_relationships/{coaching_relationship_id} [get]
func (h *RelationshipHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(middleware.RelationshipIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_relationship_id is not a valid id")
	}

	rel, err := h.service.Relationship(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rel)
}

// Create pairs a coach and a coachee inside an organization.
//
// @Summary      Create a coaching relationship
// @Tags         coaching_relationships
// @Accept       json
// @Produce      json
// @Param        relationship  body      createRelationshipRequest  true  "Relationship to create"
// @Success      201  {object}  domain.CoachingRelationship
// @Failure      400  {object}  map[string]string
// @Router       /coaching_relationships [post]
func (h *RelationshipHandler) Create(c echo.Context) error {
	var req createRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CreateRelationshipInput{
		OrganizationID: uuid.MustParse(req.OrganizationID),
		CoachID:        uuid.MustParse(req.CoachID),
		CoacheeID:      uuid.MustParse(req.CoacheeID),
	}
	rel, err := h.service.CreateRelationship(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rel)
}
