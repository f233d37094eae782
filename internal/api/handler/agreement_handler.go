package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// AgreementHandler handles HTTP requests for coaching session agreements.
type AgreementHandler struct {
	service ports.CoachingService
}

func NewAgreementHandler(service ports.CoachingService) *AgreementHandler {
	return &AgreementHandler{service: service}
}

type agreementRequest struct {
	Body string `json:"body" validate:"required"`
}

// List returns the agreements attached to a coaching session.
//
// @Summary      List agreements
// @Tags         agreements
// @Produce      json
// @Param        coaching_session_id  query     string  true  "Coaching session id"
// @Success      200  {array}   domain.Agreement
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /agreements [get]
func (h *AgreementHandler) List(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	agreements, err := h.service.AgreementsByCoachingSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agreements)
}

// Create attaches an agreement to a coaching session.
//
// @Summary      Create an agreement
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string            true  "Coaching session id"
// @Param        agreement            body      agreementRequest  true  "Agreement to create"
// @Success      201  {object}  domain.Agreement
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /agreements [post]
func (h *AgreementHandler) Create(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req agreementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	agreement, err := h.service.CreateAgreement(c.Request().Context(), ports.CreateArtifactInput{
		CoachingSessionID: sessionID,
		UserID:            ident.ID,
		Body:              req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, agreement)
}

// Update rewrites the body of an agreement.
//
// @Summary      Update an agreement
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string            true  "Coaching session id"
// @Param        id                   path      string            true  "Agreement id"
// @Param        agreement            body      agreementRequest  true  "New agreement contents"
// @Success      200  {object}  domain.Agreement
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /agreements/{id} [put]
func (h *AgreementHandler) Update(c echo.Context) error {
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

	var req agreementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	agreement, err := h.service.UpdateAgreement(c.Request().Context(), ports.UpdateArtifactInput{
		ID:                id,
		CoachingSessionID: sessionID,
		Body:              req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agreement)
}
