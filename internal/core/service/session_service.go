package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/api/metrics"
	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// tokenBytes is the entropy of an opaque session token: 32 bytes = 256 bits.
const tokenBytes = 32

// SessionService owns the session lifecycle and the background reaper.
type SessionService struct {
	store  ports.SessionStore
	auth   ports.AuthService
	window time.Duration
	logger zerolog.Logger
}

func NewSessionService(store ports.SessionStore, auth ports.AuthService, window time.Duration, logger zerolog.Logger) *SessionService {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &SessionService{store: store, auth: auth, window: window, logger: logger}
}

// Window returns the sliding inactivity window sessions live under.
func (s *SessionService) Window() time.Duration {
	return s.window
}

// Login creates a new session bound to the identity and returns its opaque
// token. The token is the only thing the client ever holds; the identity id
// stays server-side.
func (s *SessionService) Login(ctx context.Context, identity *domain.Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	sess := domain.Session{
		IdentityID:   identity.ID,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := s.store.Create(ctx, token, sess); err != nil {
		return "", fmt.Errorf("login: persist session: %w", err)
	}

	s.logger.Info().Str("identity_id", identity.ID.String()).Msg("session created")
	return token, nil
}

// Resolve maps a token to its bound identity, sliding the session window as a
// side effect. A missing or expired session and a deleted identity all
// collapse into domain.ErrUnauthenticated; store or database failures come
// back as distinct errors so the boundary can answer 500 instead of 401.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	sess, err := s.store.Touch(ctx, token, time.Now().UTC())
	if err != nil {
		metrics.SessionTouchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if sess == nil {
		metrics.SessionTouchesTotal.WithLabelValues("miss").Inc()
		return nil, domain.ErrUnauthenticated
	}
	metrics.SessionTouchesTotal.WithLabelValues("hit").Inc()

	ident, err := s.auth.IdentityByID(ctx, sess.IdentityID)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		// the session outlived its identity; it must not resolve
		return nil, domain.ErrUnauthenticated
	}
	return ident, nil
}

// Logout invalidates the session server-side. The client-held token becomes
// permanently unusable even before its cookie expires.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// RunReaper deletes expired sessions every interval until ctx is cancelled.
// A store failure is logged and retried on the next tick; the reaper never
// crashes the process. Run it on its own goroutine.
func (s *SessionService) RunReaper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.DeleteStale(ctx, time.Now().UTC())
			if err != nil {
				metrics.ReaperRunsTotal.WithLabelValues("error").Inc()
				s.logger.Error().Err(err).Msg("session reap failed; retrying next tick")
				continue
			}
			metrics.ReaperRunsTotal.WithLabelValues("ok").Inc()
			if removed > 0 {
				metrics.SessionsReapedTotal.Add(float64(removed))
				s.logger.Info().Int("removed", removed).Msg("reaped expired sessions")
			}
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
