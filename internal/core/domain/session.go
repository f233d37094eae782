package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated client context: a persisted record binding an
// opaque token to an identity, with a sliding inactivity window. The token
// itself is only ever held by the client; the record is keyed by it.
type Session struct {
	IdentityID   uuid.UUID
	CreatedAt    time.Time
	LastActivity time.Time
}

// ExpiredAt reports whether the session's sliding window has elapsed at the
// given instant.
func (s Session) ExpiredAt(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActivity) > window
}
