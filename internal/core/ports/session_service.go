package ports

import (
	"context"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// SessionService owns the session lifecycle: issue on login, renew on
// activity, invalidate on logout.
type SessionService interface {
	// Login creates and persists a new session bound to the identity and
	// returns its opaque token.
	Login(ctx context.Context, identity *domain.Identity) (string, error)

	// Resolve maps a token to its bound identity, sliding the session's
	// window as a side effect. Unknown/expired tokens and deleted identities
	// all yield domain.ErrUnauthenticated; infrastructure failures are
	// returned as distinct errors.
	Resolve(ctx context.Context, token string) (*domain.Identity, error)

	// Logout invalidates the session server-side. The token never resolves
	// again, even before the client-held cookie expires.
	Logout(ctx context.Context, token string) error
}
