package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// CoachingService implements the CRUD surface for the platform's business
// resources. Every method is a thin mapping onto a single repository call;
// ownership enforcement happens upstream in the guard middleware.
type CoachingService struct {
	organizations    ports.OrganizationRepository
	relationships    ports.RelationshipRepository
	coachingSessions ports.CoachingSessionRepository
	goals            ports.GoalRepository
	notes            ports.NoteRepository
	agreements       ports.AgreementRepository
	actions          ports.ActionRepository
	logger           zerolog.Logger
}

type CoachingRepositories struct {
	Organizations    ports.OrganizationRepository
	Relationships    ports.RelationshipRepository
	CoachingSessions ports.CoachingSessionRepository
	Goals            ports.GoalRepository
	Notes            ports.NoteRepository
	Agreements       ports.AgreementRepository
	Actions          ports.ActionRepository
}

func NewCoachingService(repos CoachingRepositories, logger zerolog.Logger) *CoachingService {
	return &CoachingService{
		organizations:    repos.Organizations,
		relationships:    repos.Relationships,
		coachingSessions: repos.CoachingSessions,
		goals:            repos.Goals,
		notes:            repos.Notes,
		agreements:       repos.Agreements,
		actions:          repos.Actions,
		logger:           logger,
	}
}

// --- Organizations ---

func (s *CoachingService) Organizations(ctx context.Context, identityID uuid.UUID) ([]domain.Organization, error) {
	return s.organizations.ListForIdentity(ctx, identityID)
}

func (s *CoachingService) Organization(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := s.organizations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	return org, nil
}

// --- Coaching relationships ---

func (s *CoachingService) RelationshipsByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.CoachingRelationship, error) {
	return s.relationships.ListByOrganization(ctx, organizationID)
}

func (s *CoachingService) Relationship(ctx context.Context, id uuid.UUID) (*domain.CoachingRelationship, error) {
	rel, err := s.relationships.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, domain.ErrRelationshipNotFound
	}
	return rel, nil
}

func (s *CoachingService) CreateRelationship(ctx context.Context, in ports.CreateRelationshipInput) (*domain.CoachingRelationship, error) {
	now := time.Now().UTC()
	rel := &domain.CoachingRelationship{
		ID:             uuid.New(),
		OrganizationID: in.OrganizationID,
		CoachID:        in.CoachID,
		CoacheeID:      in.CoacheeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.relationships.Create(ctx, rel); err != nil {
		return nil, err
	}
	s.logger.Info().Str("relationship_id", rel.ID.String()).Str("organization_id", rel.OrganizationID.String()).Msg("coaching relationship created")
	return rel, nil
}

// --- Coaching sessions ---

func (s *CoachingService) CoachingSessionsByRelationship(ctx context.Context, relationshipID uuid.UUID) ([]domain.CoachingSession, error) {
	return s.coachingSessions.ListByRelationship(ctx, relationshipID)
}

func (s *CoachingService) CoachingSession(ctx context.Context, id uuid.UUID) (*domain.CoachingSession, error) {
	cs, err := s.coachingSessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, domain.ErrCoachingSessionNotFound
	}
	return cs, nil
}

func (s *CoachingService) CreateCoachingSession(ctx context.Context, in ports.CreateCoachingSessionInput) (*domain.CoachingSession, error) {
	now := time.Now().UTC()
	cs := &domain.CoachingSession{
		ID:             uuid.New(),
		RelationshipID: in.RelationshipID,
		Date:           in.Date,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.coachingSessions.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// --- Overarching goals ---

func (s *CoachingService) GoalsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.OverarchingGoal, error) {
	return s.goals.ListByCoachingSession(ctx, coachingSessionID)
}

func (s *CoachingService) Goal(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error) {
	g, err := s.goals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

func (s *CoachingService) CreateGoal(ctx context.Context, in ports.CreateGoalInput) (*domain.OverarchingGoal, error) {
	now := time.Now().UTC()
	g := &domain.OverarchingGoal{
		ID:                uuid.New(),
		CoachingSessionID: in.CoachingSessionID,
		UserID:            in.UserID,
		Title:             in.Title,
		Body:              in.Body,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *CoachingService) UpdateGoal(ctx context.Context, in ports.UpdateGoalInput) (*domain.OverarchingGoal, error) {
	g := &domain.OverarchingGoal{
		ID:          in.ID,
		Title:       in.Title,
		Body:        in.Body,
		CompletedAt: in.CompletedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// --- Notes ---

func (s *CoachingService) NotesByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Note, error) {
	return s.notes.ListByCoachingSession(ctx, coachingSessionID)
}

func (s *CoachingService) CreateNote(ctx context.Context, in ports.CreateArtifactInput) (*domain.Note, error) {
	now := time.Now().UTC()
	n := &domain.Note{
		ID:                uuid.New(),
		CoachingSessionID: in.CoachingSessionID,
		UserID:            in.UserID,
		Body:              in.Body,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *CoachingService) UpdateNote(ctx context.Context, in ports.UpdateArtifactInput) (*domain.Note, error) {
	n := &domain.Note{ID: in.ID, CoachingSessionID: in.CoachingSessionID, Body: in.Body, UpdatedAt: time.Now().UTC()}
	if err := s.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// --- Agreements ---

func (s *CoachingService) AgreementsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Agreement, error) {
	return s.agreements.ListByCoachingSession(ctx, coachingSessionID)
}

func (s *CoachingService) CreateAgreement(ctx context.Context, in ports.CreateArtifactInput) (*domain.Agreement, error) {
	now := time.Now().UTC()
	a := &domain.Agreement{
		ID:                uuid.New(),
		CoachingSessionID: in.CoachingSessionID,
		UserID:            in.UserID,
		Body:              in.Body,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.agreements.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CoachingService) UpdateAgreement(ctx context.Context, in ports.UpdateArtifactInput) (*domain.Agreement, error) {
	a := &domain.Agreement{ID: in.ID, CoachingSessionID: in.CoachingSessionID, Body: in.Body, UpdatedAt: time.Now().UTC()}
	if err := s.agreements.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// --- Actions ---

func (s *CoachingService) ActionsByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Action, error) {
	return s.actions.ListByCoachingSession(ctx, coachingSessionID)
}

func (s *CoachingService) CreateAction(ctx context.Context, in ports.CreateArtifactInput) (*domain.Action, error) {
	now := time.Now().UTC()
	a := &domain.Action{
		ID:                uuid.New(),
		CoachingSessionID: in.CoachingSessionID,
		UserID:            in.UserID,
		Body:              in.Body,
		DueBy:             in.DueBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.actions.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CoachingService) UpdateAction(ctx context.Context, in ports.UpdateArtifactInput) (*domain.Action, error) {
	a := &domain.Action{ID: in.ID, CoachingSessionID: in.CoachingSessionID, Body: in.Body, DueBy: in.DueBy, UpdatedAt: time.Now().UTC()}
	if err := s.actions.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
