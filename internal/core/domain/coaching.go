package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrganizationNotFound = errors.New("organization not found")
var ErrRelationshipNotFound = errors.New("coaching relationship not found")
var ErrCoachingSessionNotFound = errors.New("coaching session not found")
var ErrGoalNotFound = errors.New("overarching goal not found")
var ErrNoteNotFound = errors.New("note not found")
var ErrAgreementNotFound = errors.New("agreement not found")
var ErrActionNotFound = errors.New("action not found")

// ErrUnauthorized is returned when a valid identity is not an owner of the
// resource it is trying to touch.
var ErrUnauthorized = errors.New("not an owner of this resource")

// Organization groups coaching relationships under one tenant.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoachingRelationship pairs a coach with a coachee inside an organization.
// Its coach and coachee ids are the ownership roots for everything nested
// beneath it.
type CoachingRelationship struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CoachID        uuid.UUID `json:"coach_id"`
	CoacheeID      uuid.UUID `json:"coachee_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Owners returns the identity ids entitled to touch this relationship and any
// resource nested under it.
func (r CoachingRelationship) Owners() []uuid.UUID {
	return []uuid.UUID{r.CoachID, r.CoacheeID}
}

// OwnedBy reports whether the given identity is the relationship's coach or
// coachee.
func (r CoachingRelationship) OwnedBy(identityID uuid.UUID) bool {
	return r.CoachID == identityID || r.CoacheeID == identityID
}

// CoachingSession is a single scheduled meeting within a relationship.
type CoachingSession struct {
	ID             uuid.UUID `json:"id"`
	RelationshipID uuid.UUID `json:"coaching_relationship_id"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OverarchingGoal is a longer-horizon objective attached to a coaching session.
type OverarchingGoal struct {
	ID                uuid.UUID  `json:"id"`
	CoachingSessionID uuid.UUID  `json:"coaching_session_id"`
	UserID            uuid.UUID  `json:"user_id"`
	Title             string     `json:"title"`
	Body              string     `json:"body"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Note is free-form text captured during a coaching session.
type Note struct {
	ID                uuid.UUID `json:"id"`
	CoachingSessionID uuid.UUID `json:"coaching_session_id"`
	UserID            uuid.UUID `json:"user_id"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Agreement records something coach and coachee committed to during a session.
type Agreement struct {
	ID                uuid.UUID `json:"id"`
	CoachingSessionID uuid.UUID `json:"coaching_session_id"`
	UserID            uuid.UUID `json:"user_id"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Action is a concrete follow-up item with a due date.
type Action struct {
	ID                uuid.UUID `json:"id"`
	CoachingSessionID uuid.UUID `json:"coaching_session_id"`
	UserID            uuid.UUID `json:"user_id"`
	Body              string    `json:"body"`
	DueBy             time.Time `json:"due_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
