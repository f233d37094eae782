package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// OrganizationRepository reads organizations. Find returns (nil, nil) when
// absent.
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	ListForIdentity(ctx context.Context, identityID uuid.UUID) ([]domain.Organization, error)
}

// RelationshipRepository reads and writes coaching relationships, including
// the upward walks the ownership checks need. All Find* methods return
// (nil, nil) when no row matches.
type RelationshipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CoachingRelationship, error)
	// FindByCoachingSession resolves a coaching session id to its owning
	// relationship in a single query.
	FindByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) (*domain.CoachingRelationship, error)
	// FindByGoal walks goal -> coaching session -> relationship.
	FindByGoal(ctx context.Context, goalID uuid.UUID) (*domain.CoachingRelationship, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.CoachingRelationship, error)
	Create(ctx context.Context, rel *domain.CoachingRelationship) error
}

// CoachingSessionRepository reads and writes coaching sessions.
type CoachingSessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CoachingSession, error)
	ListByRelationship(ctx context.Context, relationshipID uuid.UUID) ([]domain.CoachingSession, error)
	Create(ctx context.Context, s *domain.CoachingSession) error
}

// GoalRepository reads and writes overarching goals.
type GoalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error)
	ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.OverarchingGoal, error)
	Create(ctx context.Context, g *domain.OverarchingGoal) error
	Update(ctx context.Context, g *domain.OverarchingGoal) error
}

// NoteRepository reads and writes session notes.
type NoteRepository interface {
	ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Note, error)
	Create(ctx context.Context, n *domain.Note) error
	Update(ctx context.Context, n *domain.Note) error
}

// AgreementRepository reads and writes session agreements.
type AgreementRepository interface {
	ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Agreement, error)
	Create(ctx context.Context, a *domain.Agreement) error
	Update(ctx context.Context, a *domain.Agreement) error
}

// ActionRepository reads and writes follow-up actions.
type ActionRepository interface {
	ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Action, error)
	Create(ctx context.Context, a *domain.Action) error
	Update(ctx context.Context, a *domain.Action) error
}
