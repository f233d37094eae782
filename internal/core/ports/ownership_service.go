package ports

import (
	"context"

	"github.com/google/uuid"
)

// OwnershipService re-derives the ownership chain of a nested resource on
// every call. Results are never cached: relationships can be created or
// removed concurrently with in-flight requests.
//
// Each check returns nil when the identity is an owner, the resource family's
// not-found sentinel when the resource is absent, and domain.ErrUnauthorized
// when the identity is not in the ownership chain.
type OwnershipService interface {
	CheckRelationship(ctx context.Context, identityID, relationshipID uuid.UUID) error
	CheckCoachingSession(ctx context.Context, identityID, coachingSessionID uuid.UUID) error
	CheckGoal(ctx context.Context, identityID, goalID uuid.UUID) error
}
