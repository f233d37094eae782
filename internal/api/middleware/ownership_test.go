package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// stubOwnershipService answers every check from a fixed identity -> resource
// table; anything else is reported absent.
type stubOwnershipService struct {
	owner    uuid.UUID
	known    map[uuid.UUID]bool
	sentinel error
}

func (s *stubOwnershipService) check(identityID, resourceID uuid.UUID) error {
	if !s.known[resourceID] {
		return s.sentinel
	}
	if identityID != s.owner {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *stubOwnershipService) CheckRelationship(ctx context.Context, identityID, relationshipID uuid.UUID) error {
	return s.check(identityID, relationshipID)
}

func (s *stubOwnershipService) CheckCoachingSession(ctx context.Context, identityID, coachingSessionID uuid.UUID) error {
	return s.check(identityID, coachingSessionID)
}

func (s *stubOwnershipService) CheckGoal(ctx context.Context, identityID, goalID uuid.UUID) error {
	return s.check(identityID, goalID)
}

func runGuard(t *testing.T, mw echo.MiddlewareFunc, target string, identity *domain.Identity) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, identity)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireRelationshipAccess_OwnerPasses(t *testing.T) {
	coach := &domain.Identity{ID: uuid.New()}
	relID := uuid.New()
	owners := &stubOwnershipService{
		owner:    coach.ID,
		known:    map[uuid.UUID]bool{relID: true},
		sentinel: domain.ErrRelationshipNotFound,
	}

	rec, called := runGuard(t, RequireRelationshipAccess(owners),
		"/coaching_sessions?coaching_relationship_id="+relID.String(), coach)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRelationshipAccess_ThirdPartyIs401(t *testing.T) {
	relID := uuid.New()
	owners := &stubOwnershipService{
		owner:    uuid.New(),
		known:    map[uuid.UUID]bool{relID: true},
		sentinel: domain.ErrRelationshipNotFound,
	}
	outsider := &domain.Identity{ID: uuid.New()}

	rec, called := runGuard(t, RequireRelationshipAccess(owners),
		"/coaching_sessions?coaching_relationship_id="+relID.String(), outsider)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRelationshipAccess_AbsentIs404(t *testing.T) {
	owners := &stubOwnershipService{
		owner:    uuid.New(),
		known:    map[uuid.UUID]bool{},
		sentinel: domain.ErrRelationshipNotFound,
	}
	ident := &domain.Identity{ID: owners.owner}

	rec, called := runGuard(t, RequireRelationshipAccess(owners),
		"/coaching_sessions?coaching_relationship_id="+uuid.NewString(), ident)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGuard_MissingParamIs400(t *testing.T) {
	owners := &stubOwnershipService{sentinel: domain.ErrRelationshipNotFound}
	ident := &domain.Identity{ID: uuid.New()}

	rec, called := runGuard(t, RequireRelationshipAccess(owners), "/coaching_sessions", ident)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGuard_MalformedIDIs400(t *testing.T) {
	owners := &stubOwnershipService{sentinel: domain.ErrRelationshipNotFound}
	ident := &domain.Identity{ID: uuid.New()}

	rec, called := runGuard(t, RequireRelationshipAccess(owners),
		"/coaching_sessions?coaching_relationship_id=not-a-uuid", ident)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGuard_UnauthenticatedIs401(t *testing.T) {
	relID := uuid.New()
	owners := &stubOwnershipService{
		known:    map[uuid.UUID]bool{relID: true},
		sentinel: domain.ErrRelationshipNotFound,
	}

	rec, called := runGuard(t, RequireRelationshipAccess(owners),
		"/coaching_sessions?coaching_relationship_id="+relID.String(), nil)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireCoachingSessionAccess_PathParamFallback(t *testing.T) {
	coach := &domain.Identity{ID: uuid.New()}
	sessionID := uuid.New()
	owners := &stubOwnershipService{
		owner:    coach.ID,
		known:    map[uuid.UUID]bool{sessionID: true},
		sentinel: domain.ErrCoachingSessionNotFound,
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/coaching_sessions/"+sessionID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(CoachingSessionIDParam)
	c.SetParamValues(sessionID.String())
	c.Set(identityKey, coach)

	called := false
	handler := RequireCoachingSessionAccess(owners)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireGoalAccess_AbsentGoalIs404(t *testing.T) {
	ident := &domain.Identity{ID: uuid.New()}
	owners := &stubOwnershipService{
		owner:    ident.ID,
		known:    map[uuid.UUID]bool{},
		sentinel: domain.ErrGoalNotFound,
	}

	rec, called := runGuard(t, RequireGoalAccess(owners),
		"/overarching_goals?overarching_goal_id="+uuid.NewString(), ident)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
