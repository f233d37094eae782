package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// ActionHandler handles HTTP requests for coaching session action items.
type ActionHandler struct {
	service ports.CoachingService
}

func NewActionHandler(service ports.CoachingService) *ActionHandler {
	return &ActionHandler{service: service}
}

type actionRequest struct {
	Body  string    `json:"body" validate:"required"`
	DueBy time.Time `json:"due_by" validate:"required"`
}

// List returns the action items attached to a coaching session.
//
// @Summary      List actions
// @Tags         actions
// @Produce      json
// @Param        coaching_session_id  query     string  true  "Coaching session id"
// @Success      200  {array}   domain.Action
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /actions [get]
func (h *ActionHandler) List(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	actions, err := h.service.ActionsByCoachingSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actions)
}

// Create attaches an action item to a coaching session.
//
// @Summary      Create an action
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string         true  "Coaching session id"
// @Param        action               body      actionRequest  true  "Action to create"
// @Success      201  {object}  domain.Action
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /actions [post]
func (h *ActionHandler) Create(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req actionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	action, err := h.service.CreateAction(c.Request().Context(), ports.CreateArtifactInput{
		CoachingSessionID: sessionID,
		UserID:            ident.ID,
		Body:              req.Body,
		DueBy:             req.DueBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, action)
}

// Update rewrites the body and due date of an action item.
//
// @Summary      Update an action
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string         true  "Coaching session id"
// @Param        id                   path      string         true  "Action id"
// @Param        action               body      actionRequest  true  "New action contents"
// @Success      200  {object}  domain.Action
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /actions/{id} [put]
func (h *ActionHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a valid id")
	}
	// the ownership middleware has verified this session; the update is
	// scoped to it so an id from another session never matches
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	var req actionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	action, err := h.service.UpdateAction(c.Request().Context(), ports.UpdateArtifactInput{
		ID:                id,
		CoachingSessionID: sessionID,
		Body:              req.Body,
		DueBy:             req.DueBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, action)
}
