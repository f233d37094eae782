package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

type stubRelationshipRepo struct {
	relationships map[uuid.UUID]*domain.CoachingRelationship
	// sessionToRel and goalToRel model the foreign-key walks
	sessionToRel map[uuid.UUID]uuid.UUID
	goalToRel    map[uuid.UUID]uuid.UUID
	err          error
}

func newStubRelationshipRepo() *stubRelationshipRepo {
	return &stubRelationshipRepo{
		relationships: make(map[uuid.UUID]*domain.CoachingRelationship),
		sessionToRel:  make(map[uuid.UUID]uuid.UUID),
		goalToRel:     make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *stubRelationshipRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.CoachingRelationship, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.relationships[id], nil
}

func (r *stubRelationshipRepo) FindByCoachingSession(_ context.Context, sessionID uuid.UUID) (*domain.CoachingRelationship, error) {
	if r.err != nil {
		return nil, r.err
	}
	relID, ok := r.sessionToRel[sessionID]
	if !ok {
		return nil, nil
	}
	return r.relationships[relID], nil
}

func (r *stubRelationshipRepo) FindByGoal(_ context.Context, goalID uuid.UUID) (*domain.CoachingRelationship, error) {
	if r.err != nil {
		return nil, r.err
	}
	relID, ok := r.goalToRel[goalID]
	if !ok {
		return nil, nil
	}
	return r.relationships[relID], nil
}

func (r *stubRelationshipRepo) ListByOrganization(_ context.Context, _ uuid.UUID) ([]domain.CoachingRelationship, error) {
	return nil, nil
}

func (r *stubRelationshipRepo) Create(_ context.Context, rel *domain.CoachingRelationship) error {
	r.relationships[rel.ID] = rel
	return nil
}

func ownershipFixture() (*OwnershipService, *stubRelationshipRepo, *domain.CoachingRelationship, uuid.UUID, uuid.UUID) {
	repo := newStubRelationshipRepo()
	rel := &domain.CoachingRelationship{
		ID:        uuid.New(),
		CoachID:   uuid.New(),
		CoacheeID: uuid.New(),
	}
	repo.relationships[rel.ID] = rel

	sessionID := uuid.New()
	repo.sessionToRel[sessionID] = rel.ID
	goalID := uuid.New()
	repo.goalToRel[goalID] = rel.ID

	return NewOwnershipService(repo), repo, rel, sessionID, goalID
}

func TestOwnership_Relationship_CoachAndCoacheeAllowed(t *testing.T) {
	svc, _, rel, _, _ := ownershipFixture()
	ctx := context.Background()

	if err := svc.CheckRelationship(ctx, rel.CoachID, rel.ID); err != nil {
		t.Fatalf("coach should be an owner: %v", err)
	}
	if err := svc.CheckRelationship(ctx, rel.CoacheeID, rel.ID); err != nil {
		t.Fatalf("coachee should be an owner: %v", err)
	}
}

func TestOwnership_Relationship_ThirdPartyDenied(t *testing.T) {
	svc, _, rel, _, _ := ownershipFixture()

	err := svc.CheckRelationship(context.Background(), uuid.New(), rel.ID)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestOwnership_Relationship_AbsentIsNotFound(t *testing.T) {
	svc, _, rel, _, _ := ownershipFixture()

	err := svc.CheckRelationship(context.Background(), rel.CoachID, uuid.New())
	if !errors.Is(err, domain.ErrRelationshipNotFound) {
		t.Fatalf("expected ErrRelationshipNotFound, got %v", err)
	}
}

func TestOwnership_CoachingSession_WalksToRelationship(t *testing.T) {
	svc, _, rel, sessionID, _ := ownershipFixture()
	ctx := context.Background()

	if err := svc.CheckCoachingSession(ctx, rel.CoacheeID, sessionID); err != nil {
		t.Fatalf("coachee should reach the session: %v", err)
	}
	if err := svc.CheckCoachingSession(ctx, uuid.New(), sessionID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.CheckCoachingSession(ctx, rel.CoachID, uuid.New()); !errors.Is(err, domain.ErrCoachingSessionNotFound) {
		t.Fatalf("expected ErrCoachingSessionNotFound, got %v", err)
	}
}

func TestOwnership_Goal_WalksTwoLevels(t *testing.T) {
	svc, _, rel, _, goalID := ownershipFixture()
	ctx := context.Background()

	if err := svc.CheckGoal(ctx, rel.CoachID, goalID); err != nil {
		t.Fatalf("coach should reach the goal: %v", err)
	}
	if err := svc.CheckGoal(ctx, uuid.New(), goalID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.CheckGoal(ctx, rel.CoachID, uuid.New()); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestOwnership_NoCachingAcrossCalls(t *testing.T) {
	svc, repo, rel, _, _ := ownershipFixture()
	ctx := context.Background()

	if err := svc.CheckRelationship(ctx, rel.CoachID, rel.ID); err != nil {
		t.Fatalf("first check should pass: %v", err)
	}

	// the relationship is deleted between requests; the next check must see it
	delete(repo.relationships, rel.ID)

	if err := svc.CheckRelationship(ctx, rel.CoachID, rel.ID); !errors.Is(err, domain.ErrRelationshipNotFound) {
		t.Fatalf("ownership must be re-derived per call, got %v", err)
	}
}
