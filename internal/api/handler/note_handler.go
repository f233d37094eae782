package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// NoteHandler handles HTTP requests for coaching session notes.
type NoteHandler struct {
	service ports.CoachingService
}

func NewNoteHandler(service ports.CoachingService) *NoteHandler {
	return &NoteHandler{service: service}
}

type noteRequest struct {
	Body string `json:"body" validate:"required"`
}

// List returns the notes attached to a coaching session.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Param        coaching_session_id  query     string  true  "Coaching session id"
// @Success      200  {array}   domain.Note
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	notes, err := h.service.NotesByCoachingSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Create attaches a note to a coaching session.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string       true  "Coaching session id"
// @Param        note                 body      noteRequest  true  "Note to create"
// @Success      201  {object}  domain.Note
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	sessionID, err := uuid.Parse(c.QueryParam(middleware.CoachingSessionIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "coaching_session_id is not a valid id")
	}

	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.CreateNote(c.Request().Context(), ports.CreateArtifactInput{
		CoachingSessionID: sessionID,
		UserID:            ident.ID,
		Body:              req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// Update rewrites the body of a note.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        coaching_session_id  query     string       true  "Coaching session id"
// @Param        id                   path      string       true  "Note id"
// @Param        note                 body      noteRequest  true  "New note contents"
// @Success      200  {object}  domain.Note
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
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

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.UpdateNote(c.Request().Context(), ports.UpdateArtifactInput{
		ID:                id,
		CoachingSessionID: sessionID,
		Body:              req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}
