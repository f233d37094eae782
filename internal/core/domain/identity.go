package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthenticated is returned for every authentication failure: unknown
// email, wrong password, missing or expired session. Callers must not be able
// to tell these cases apart.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity models an authenticatable actor on the platform.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Credentials carries a login attempt. It lives only for the duration of the
// request and must never be logged or persisted.
type Credentials struct {
	Email    string
	Password string
	// Next is an optional post-login redirect target.
	Next string
}

// NormalizeEmail lowercases and trims a login key so that lookups are exact
// matches on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
