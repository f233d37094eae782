package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// CoachingSessionRepository implements ports.CoachingSessionRepository on
// pgxpool.
type CoachingSessionRepository struct {
	pool *pgxpool.Pool
}

func NewCoachingSessionRepository(pool *pgxpool.Pool) *CoachingSessionRepository {
	return &CoachingSessionRepository{pool: pool}
}

const coachingSessionColumns = `id, coaching_relationship_id, date, created_at, updated_at`

// FindByID returns the coaching session with the given id, or (nil, nil).
func (r *CoachingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CoachingSession, error) {
	query := `SELECT ` + coachingSessionColumns + ` FROM coaching_sessions WHERE id = $1`

	var s domain.CoachingSession
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.RelationshipID, &s.Date, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListByRelationship returns all sessions of a relationship ordered by date.
func (r *CoachingSessionRepository) ListByRelationship(ctx context.Context, relationshipID uuid.UUID) ([]domain.CoachingSession, error) {
	query := `SELECT ` + coachingSessionColumns + ` FROM coaching_sessions WHERE coaching_relationship_id = $1 ORDER BY date`

	rows, err := r.pool.Query(ctx, query, relationshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.CoachingSession
	for rows.Next() {
		var s domain.CoachingSession
		if err := rows.Scan(&s.ID, &s.RelationshipID, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Create inserts a new coaching session.
func (r *CoachingSessionRepository) Create(ctx context.Context, s *domain.CoachingSession) error {
	query := `
		INSERT INTO coaching_sessions (id, coaching_relationship_id, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, s.ID, s.RelationshipID, s.Date, s.CreatedAt, s.UpdatedAt)
	return err
}
