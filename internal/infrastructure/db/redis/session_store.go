package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

const sessionPrefix = "session:"

// touchScript atomically renews a session's sliding window. It re-reads the
// record, refuses it when the window has already elapsed (deleting the stale
// record), and otherwise rewrites last_activity in a single step so two
// concurrent requests can never interleave a read-modify-write.
//
// KEYS[1] = session key, ARGV[1] = now (unix seconds), ARGV[2] = window (seconds).
// Returns the renewed record blob, or false when the session must not resolve.
var touchScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
  return false
end
local sess = cjson.decode(raw)
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
if now - sess.last_activity > window then
  redis.call("DEL", KEYS[1])
  return false
end
sess.last_activity = now
local blob = cjson.encode(sess)
redis.call("SET", KEYS[1], blob)
redis.call("EXPIRE", KEYS[1], window)
return blob
`)

// sessionRecord is the persisted layout: one record per session, keyed by the
// opaque token, in its own key namespace away from business data.
type sessionRecord struct {
	IdentityID   string `json:"identity_id"`
	CreatedAt    int64  `json:"created_at"`
	LastActivity int64  `json:"last_activity"`
}

// SessionStore implements ports.SessionStore on a Redis client. Each session
// is an independently keyed record, so concurrent requests only ever contend
// on their own session. Every operation carries a bounded timeout; a slow
// store surfaces as an error, never as a hung request worker.
type SessionStore struct {
	client    *redis.Client
	window    time.Duration
	opTimeout time.Duration
}

// NewSessionStore creates a Redis-backed session store with the given sliding
// window and per-operation timeout.
func NewSessionStore(client *redis.Client, window, opTimeout time.Duration) *SessionStore {
	if opTimeout <= 0 {
		opTimeout = 2 * time.Second
	}
	return &SessionStore{client: client, window: window, opTimeout: opTimeout}
}

func (s *SessionStore) key(token string) string {
	return sessionPrefix + token
}

// Create persists a new session record under the token. The key TTL acts as a
// safety net; the reaper and the touch script remain authoritative for the
// sliding window.
func (s *SessionStore) Create(ctx context.Context, token string, sess domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	blob, err := json.Marshal(sessionRecord{
		IdentityID:   sess.IdentityID.String(),
		CreatedAt:    sess.CreatedAt.Unix(),
		LastActivity: sess.LastActivity.Unix(),
	})
	if err != nil {
		return fmt.Errorf("session store: marshal record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token), blob, s.window).Err(); err != nil {
		return fmt.Errorf("session store: create: %w", err)
	}
	return nil
}

// Touch atomically slides the session's window to start at now and returns
// the renewed record. Unknown tokens and elapsed windows both yield
// (nil, nil).
func (s *SessionStore) Touch(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	res, err := touchScript.Run(ctx, s.client,
		[]string{s.key(token)},
		now.Unix(), int64(s.window/time.Second),
	).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store: touch: %w", err)
	}

	blob, ok := res.(string)
	if !ok {
		return nil, fmt.Errorf("session store: touch returned %T", res)
	}
	return decodeRecord([]byte(blob))
}

// Delete removes the record immediately; the token never resolves again.
// Deleting an absent token is a no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session store: delete: %w", err)
	}
	return nil
}

// DeleteStale scans the session namespace and removes every record whose
// window has elapsed at now. Corrupt records are removed as well; they can
// never resolve, so keeping them only leaks storage.
func (s *SessionStore) DeleteStale(ctx context.Context, now time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	var removed int
	iter := s.client.Scan(ctx, 0, sessionPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("session store: reap get: %w", err)
		}

		var rec sessionRecord
		stale := json.Unmarshal(raw, &rec) != nil ||
			now.Sub(time.Unix(rec.LastActivity, 0)) > s.window

		if stale {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("session store: reap delete: %w", err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("session store: reap scan: %w", err)
	}
	return removed, nil
}

func decodeRecord(blob []byte) (*domain.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("session store: unmarshal record: %w", err)
	}

	identityID, err := uuid.Parse(rec.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("session store: record identity id: %w", err)
	}

	return &domain.Session{
		IdentityID:   identityID,
		CreatedAt:    time.Unix(rec.CreatedAt, 0).UTC(),
		LastActivity: time.Unix(rec.LastActivity, 0).UTC(),
	}, nil
}
