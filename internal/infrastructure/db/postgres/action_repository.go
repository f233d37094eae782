package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// ActionRepository implements ports.ActionRepository on pgxpool.
type ActionRepository struct {
	pool *pgxpool.Pool
}

func NewActionRepository(pool *pgxpool.Pool) *ActionRepository {
	return &ActionRepository{pool: pool}
}

func (r *ActionRepository) ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Action, error) {
	query := `
		SELECT id, coaching_session_id, user_id, body, due_by, created_at, updated_at
		FROM actions WHERE coaching_session_id = $1 ORDER BY due_by
	`
	rows, err := r.pool.Query(ctx, query, coachingSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.Action
	for rows.Next() {
		var a domain.Action
		if err := rows.Scan(&a.ID, &a.CoachingSessionID, &a.UserID, &a.Body, &a.DueBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *ActionRepository) Create(ctx context.Context, a *domain.Action) error {
	query := `
		INSERT INTO actions (id, coaching_session_id, user_id, body, due_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query, a.ID, a.CoachingSessionID, a.UserID, a.Body, a.DueBy, a.CreatedAt, a.UpdatedAt)
	return err
}

// Update rewrites the action's body and due date and reloads the row into a.
// The match is constrained to the action's coaching session so an id from
// another session can never be rewritten. Returns domain.ErrActionNotFound
// when no row matches.
func (r *ActionRepository) Update(ctx context.Context, a *domain.Action) error {
	query := `
		UPDATE actions SET body = $3, due_by = $4, updated_at = $5
		WHERE id = $1 AND coaching_session_id = $2
		RETURNING id, coaching_session_id, user_id, body, due_by, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, a.ID, a.CoachingSessionID, a.Body, a.DueBy, a.UpdatedAt).
		Scan(&a.ID, &a.CoachingSessionID, &a.UserID, &a.Body, &a.DueBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrActionNotFound
		}
		return err
	}
	return nil
}
