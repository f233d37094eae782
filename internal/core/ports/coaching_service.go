package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// --- Inputs ---

type CreateRelationshipInput struct {
	OrganizationID uuid.UUID
	CoachID        uuid.UUID
	CoacheeID      uuid.UUID
}

type CreateCoachingSessionInput struct {
	RelationshipID uuid.UUID
	Date           time.Time
}

type CreateGoalInput struct {
	CoachingSessionID uuid.UUID
	UserID            uuid.UUID
	Title             string
	Body              string
}

type UpdateGoalInput struct {
	ID          uuid.UUID
	Title       string
	Body        string
	CompletedAt *time.Time
}

type CreateArtifactInput struct {
	CoachingSessionID uuid.UUID
	UserID            uuid.UUID
	Body              string
	// DueBy applies to actions only.
	DueBy time.Time
}

type UpdateArtifactInput struct {
	ID uuid.UUID
	// CoachingSessionID is the session whose ownership was already verified
	// upstream; the update only matches an artifact belonging to it.
	CoachingSessionID uuid.UUID
	Body              string
	DueBy             time.Time
}

// CoachingService exposes the CRUD surface for the platform's business
// resources. Every operation is a thin mapping onto a single repository call;
// access control happens upstream in the ownership middleware, not here.
type CoachingService interface {
	Organizations(ctx context.Context, identityID uuid.UUID) ([]domain.Organization, error)
	Organization(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	RelationshipsByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.CoachingRelationship, error)
	Relationship(ctx context.Context, id uuid.UUID) (*domain.CoachingRelationship, error)
	CreateRelationship(ctx context.Context, in CreateRelationshipInput) (*domain.CoachingRelationship, error)

	CoachingSessionsByRelationship(ctx context.Context, relationshipID uuid.UUID) ([]domain.CoachingSession, error)
	CoachingSession(ctx context.Context, id uuid.UUID) (*domain.CoachingSession, error)
	CreateCoachingSession(ctx context.Context, in CreateCoachingSessionInput) (*domain.CoachingSession, error)

	GoalsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.OverarchingGoal, error)
	Goal(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error)
	CreateGoal(ctx context.Context, in CreateGoalInput) (*domain.OverarchingGoal, error)
	UpdateGoal(ctx context.Context, in UpdateGoalInput) (*domain.OverarchingGoal, error)

	NotesByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Note, error)
	CreateNote(ctx context.Context, in CreateArtifactInput) (*domain.Note, error)
	UpdateNote(ctx context.Context, in UpdateArtifactInput) (*domain.Note, error)

	AgreementsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Agreement, error)
	CreateAgreement(ctx context.Context, in CreateArtifactInput) (*domain.Agreement, error)
	UpdateAgreement(ctx context.Context, in UpdateArtifactInput) (*domain.Agreement, error)

	ActionsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Action, error)
	CreateAction(ctx context.Context, in CreateArtifactInput) (*domain.Action, error)
	UpdateAction(ctx context.Context, in UpdateArtifactInput) (*domain.Action, error)
}
