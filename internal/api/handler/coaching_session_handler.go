package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// CoachingSessionHandler handles HTTP requests for coaching sessions.
type CoachingSessionHandler struct {
	service ports.CoachingService
}

func NewCoachingSessionHandler(service ports.CoachingService) *CoachingSessionHandler {
	return &CoachingSessionHandler{service: service}
}

type createCoachingSessionRequest struct {
	Date time.Time `json:"date" validate:"required"`
}

// List returns the coaching sessions of a relationship. The ownership
// middleware has already verified the caller is a party to the relationship.
//
// @Summary      List coaching sessions
// @Tags         coaching_sessions
// @Produce      json
// @Param        coaching_relationship_id  query     string  true  "Relationship id"
// @Success      200  {array}   domain.CoachingSession
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /coaching_sessions [get]
func (h *CoachingSessionHandler) List(c echo.Context) error {
	relID, err := uuid.Parse(c.QueryParam(middleware.RelationshipIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_relationship_id is not a valid id")
	}

	sessions, err := h.service.CoachingSessionsByRelationship(c.Request().Context(), relID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// Get returns one coaching session.
//
// @Summary      Get a coaching session
// @Tags         coaching_sessions
// @Produce      json
// @Param        coaching_session_id  path      string  true  "Coaching session id"
// @Success      200  {object}  domain.CoachingSession
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /coaching_sessions/{coaching_session_id} [get]
func (h *CoachingSessionHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	session, err := h.service.CoachingSession(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// Create schedules a coaching session within a relationship.
//
// @Summary      Create a coaching session
// @Tags         coaching_sessions
// @Accept       json
// @Produce      json
// @Param        coaching_relationship_id  query     string                        true  "Relationship id"
// @Param        session                   body      createCoachingSessionRequest  true  "Session to create"
// @Success      201  {object}  domain.CoachingSession
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /coaching_sessions [post]
func (h *CoachingSessionHandler) Create(c echo.Context) error {
	relID, err := uuid.Parse(c.QueryParam(middleware.RelationshipIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_relationship_id is not a valid id")
	}

	var req createCoachingSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.service.CreateCoachingSession(c.Request().Context(), ports.CreateCoachingSessionInput{
		RelationshipID: relID,
		Date:           req.Date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}
