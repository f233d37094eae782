package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// OwnershipService re-derives a nested resource's ownership chain from the
// database on every call. Nothing is cached between requests: a relationship
// edited concurrently with an in-flight request must be judged by its current
// row, not a stale copy.
type OwnershipService struct {
	relationships ports.RelationshipRepository
}

func NewOwnershipService(relationships ports.RelationshipRepository) *OwnershipService {
	return &OwnershipService{relationships: relationships}
}

// CheckRelationship verifies the identity is the relationship's coach or
// coachee.
func (s *OwnershipService) CheckRelationship(ctx context.Context, identityID, relationshipID uuid.UUID) error {
	rel, err := s.relationships.FindByID(ctx, relationshipID)
	if err != nil {
		return fmt.Errorf("ownership: relationship lookup: %w", err)
	}
	return judge(rel, domain.ErrRelationshipNotFound, identityID)
}

// CheckCoachingSession resolves the session up to its owning relationship and
// applies the same coach-or-coachee check.
func (s *OwnershipService) CheckCoachingSession(ctx context.Context, identityID, coachingSessionID uuid.UUID) error {
	rel, err := s.relationships.FindByCoachingSession(ctx, coachingSessionID)
	if err != nil {
		return fmt.Errorf("ownership: coaching session lookup: %w", err)
	}
	return judge(rel, domain.ErrCoachingSessionNotFound, identityID)
}

// CheckGoal walks goal -> coaching session -> relationship and applies the
// same check.
func (s *OwnershipService) CheckGoal(ctx context.Context, identityID, goalID uuid.UUID) error {
	rel, err := s.relationships.FindByGoal(ctx, goalID)
	if err != nil {
		return fmt.Errorf("ownership: goal lookup: %w", err)
	}
	return judge(rel, domain.ErrGoalNotFound, identityID)
}

func judge(rel *domain.CoachingRelationship, notFound error, identityID uuid.UUID) error {
	if rel == nil {
		return notFound
	}
	if !rel.OwnedBy(identityID) {
		return domain.ErrUnauthorized
	}
	return nil
}
