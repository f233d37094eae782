package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// GoalHandler handles HTTP requests for overarching goals.
type GoalHandler struct {
	service ports.CoachingService
}

func NewGoalHandler(service ports.CoachingService) *GoalHandler {
	return &GoalHandler{service: service}
}

type createGoalRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}

type updateGoalRequest struct {
	Title       string     `json:"title" validate:"required"`
	Body        string     `json:"body"`
	CompletedAt *time.Time `json:"completed_at"`
}

// List returns the overarching goals attached to a coaching session.
//
// @Summary      List overarching goals
// @Tags         overarching_goals
// @Produce      json
// @Param        coaching_session_id  query     string  true  "Coaching session id"
// @Success      200  {array}   domain.OverarchingGoal
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /overarching_goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	goals, err := h.service.GoalsByCoachingSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

// Get returns one overarching goal.
//
// @Summary      Get an overarching goal
// @Tags         overarching_goals
// @Produce      json
// @Param        overarching_goal_id  path      string  true  "Goal id"
// @Success      200  {object}  domain.OverarchingGoal
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /overarching_goals/{overarching_goal_id} [get]
func (h *GoalHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(middleware.GoalIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "overarching_goal_id is not a valid id")
	}

	goal, err := h.service.Goal(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// Create attaches a new overarching goal to a coaching session.
//
// @Summary      Create an overarching goal
// @Tags         overarching_goals
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string             true  "Coaching session id"
// @Param        goal                 body      createGoalRequest  true  "Goal to create"
// @Success      201  {object}  domain.OverarchingGoal
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /overarching_goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req createGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.CreateGoal(c.Request().Context(), ports.CreateGoalInput{
		CoachingSessionID: sessionID,
		UserID:            ident.ID,
		Title:             req.Title,
		Body:              req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// Update rewrites an overarching goal, including marking it complete.
//
// @Summary      Update an overarching goal
// @Tags         overarching_goals
// @Accept       json
// @Produce      json
// @Param        overarching_goal_id  path      string             true  "Goal id"
// @Param        goal                 body      updateGoalRequest  true  "New goal contents"
// @Success      200  {object}  domain.OverarchingGoal
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /overarching_goals/{overarching_goal_id} [put]
func (h *GoalHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(middleware.GoalIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "overarching_goal_id is not a valid id")
	}

	var req updateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.UpdateGoal(c.Request().Context(), ports.UpdateGoalInput{
		ID:          id,
		Title:       req.Title,
		Body:        req.Body,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}
