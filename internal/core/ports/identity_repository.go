package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// IdentityRepository defines the interface for identity lookups. This
// subsystem only ever reads identities; provisioning happens elsewhere.
// Both lookups return (nil, nil) when no identity matches.
type IdentityRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
}
