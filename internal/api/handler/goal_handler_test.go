package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// stubCoachingService embeds the interface so each test only overrides the
// methods it exercises.
type stubCoachingService struct {
	ports.CoachingService

	goals      []domain.OverarchingGoal
	createFn   func(ctx context.Context, in ports.CreateGoalInput) (*domain.OverarchingGoal, error)
	updateFn   func(ctx context.Context, in ports.UpdateGoalInput) (*domain.OverarchingGoal, error)
	goalByIDFn func(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error)
}

func (s *stubCoachingService) GoalsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.OverarchingGoal, error) {
	return s.goals, nil
}

func (s *stubCoachingService) Goal(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error) {
	return s.goalByIDFn(ctx, id)
}

func (s *stubCoachingService) CreateGoal(ctx context.Context, in ports.CreateGoalInput) (*domain.OverarchingGoal, error) {
	return s.createFn(ctx, in)
}

func (s *stubCoachingService) UpdateGoal(ctx context.Context, in ports.UpdateGoalInput) (*domain.OverarchingGoal, error) {
	return s.updateFn(ctx, in)
}

func newGoalContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGoalHandler_List(t *testing.T) {
	sessionID := uuid.New()
	stub := &stubCoachingService{
		goals: []domain.OverarchingGoal{
			{ID: uuid.New(), CoachingSessionID: sessionID, Title: "Ship the platform"},
		},
	}
	handler := NewGoalHandler(stub)

	c, rec := newGoalContext(t, http.MethodGet, "/overarching_goals?coaching_session_id="+sessionID.String(), "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["title"] != "Ship the platform" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestGoalHandler_List_MalformedSessionID(t *testing.T) {
	handler := NewGoalHandler(&stubCoachingService{})

	c, _ := newGoalContext(t, http.MethodGet, "/overarching_goals?coaching_session_id=nope", "")
	err := handler.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGoalHandler_Create(t *testing.T) {
	sessionID := uuid.New()
	author := &domain.Identity{ID: uuid.New()}
	stub := &stubCoachingService{
		createFn: func(ctx context.Context, in ports.CreateGoalInput) (*domain.OverarchingGoal, error) {
			if in.CoachingSessionID != sessionID {
				t.Fatalf("wrong session id: %s", in.CoachingSessionID)
			}
			if in.UserID != author.ID {
				t.Fatalf("goal not attributed to the caller")
			}
			return &domain.OverarchingGoal{
				ID:                uuid.New(),
				CoachingSessionID: in.CoachingSessionID,
				UserID:            in.UserID,
				Title:             in.Title,
				Body:              in.Body,
			}, nil
		},
	}
	handler := NewGoalHandler(stub)

	c, rec := newGoalContext(t, http.MethodPost,
		"/overarching_goals?coaching_session_id="+sessionID.String(),
		`{"title":"Ship the platform","body":"All modules live"}`)
	c.Set("identity", author)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestGoalHandler_Create_MissingTitle(t *testing.T) {
	handler := NewGoalHandler(&stubCoachingService{})

	c, _ := newGoalContext(t, http.MethodPost,
		"/overarching_goals?coaching_session_id="+uuid.NewString(),
		`{"body":"no title"}`)
	c.Set("identity", &domain.Identity{ID: uuid.New()})

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGoalHandler_Update_MarksComplete(t *testing.T) {
	goalID := uuid.New()
	done := time.Now().UTC().Truncate(time.Second)
	stub := &stubCoachingService{
		updateFn: func(ctx context.Context, in ports.UpdateGoalInput) (*domain.OverarchingGoal, error) {
			if in.ID != goalID {
				t.Fatalf("wrong goal id: %s", in.ID)
			}
			if in.CompletedAt == nil || !in.CompletedAt.Equal(done) {
				t.Fatalf("completed_at not carried through: %v", in.CompletedAt)
			}
			return &domain.OverarchingGoal{ID: in.ID, Title: in.Title, CompletedAt: in.CompletedAt}, nil
		},
	}
	handler := NewGoalHandler(stub)

	body := `{"title":"Ship the platform","completed_at":"` + done.Format(time.RFC3339) + `"}`
	c, rec := newGoalContext(t, http.MethodPut, "/overarching_goals/"+goalID.String(), body)
	c.SetParamNames("overarching_goal_id")
	c.SetParamValues(goalID.String())

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGoalHandler_Get_NotFound(t *testing.T) {
	stub := &stubCoachingService{
		goalByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error) {
			return nil, domain.ErrGoalNotFound
		},
	}
	handler := NewGoalHandler(stub)

	goalID := uuid.NewString()
	c, _ := newGoalContext(t, http.MethodGet, "/overarching_goals/"+goalID, "")
	c.SetParamNames("overarching_goal_id")
	c.SetParamValues(goalID)

	if err := handler.Get(c); err != domain.ErrGoalNotFound {
		t.Fatalf("expected sentinel to pass through to the error handler, got %v", err)
	}
}
