package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// AuthService is the pluggable authentication backend: it verifies submitted
// credentials and resolves session-bound identity references.
type AuthService interface {
	// Authenticate returns the identity matching the credentials, or
	// domain.ErrUnauthenticated. Unknown email and wrong password produce the
	// same error value.
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)

	// IdentityByID is a pure lookup by primary key. An absent identity yields
	// (nil, nil); infrastructure failures are returned as errors, never
	// panics.
	IdentityByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
}
