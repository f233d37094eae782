package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
	"github.com/refactor-group/coaching-platform/internal/pkg/password"
)

// AuthService is the credential-verifying authentication backend. It is the
// only component that ever reads a password hash.
type AuthService struct {
	identities ports.IdentityRepository
	logger     zerolog.Logger
}

func NewAuthService(identities ports.IdentityRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{identities: identities, logger: logger}
}

// Authenticate looks the identity up by its normalized email and verifies the
// submitted password against the stored hash. Unknown email and wrong
// password collapse into the same domain.ErrUnauthenticated so a caller
// cannot probe which emails exist. Credentials are never logged.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	ident, err := s.identities.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("authenticate: identity lookup: %w", err)
	}
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}

	if !password.Verify(creds.Password, ident.PasswordHash) {
		return nil, domain.ErrUnauthenticated
	}

	return ident, nil
}

// IdentityByID resolves a session-bound identity reference. An absent
// identity yields (nil, nil) for the extractor to turn into a 401; only
// infrastructure failures come back as errors.
func (s *AuthService) IdentityByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	ident, err := s.identities.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}
	return ident, nil
}
