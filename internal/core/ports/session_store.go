package ports

import (
	"context"
	"time"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// SessionStore persists sessions keyed by their opaque token, in a namespace
// separate from business data. Implementations must support concurrent
// per-record access without a global lock.
type SessionStore interface {
	// Create persists a new session record under the given token.
	Create(ctx context.Context, token string, s domain.Session) error

	// Touch atomically extends the session's sliding window and returns the
	// renewed record. It returns (nil, nil) when the token is unknown or the
	// record's window has already elapsed; an expired record must never
	// resolve.
	Touch(ctx context.Context, token string, now time.Time) (*domain.Session, error)

	// Delete removes the record immediately. Deleting an absent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteStale removes every record whose window has elapsed at now and
	// reports how many were removed. Used by the background reaper.
	DeleteStale(ctx context.Context, now time.Time) (int, error)
}
