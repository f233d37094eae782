package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// GoalRepository implements ports.GoalRepository on pgxpool.
type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, coaching_session_id, user_id, title, body, completed_at, created_at, updated_at`

// FindByID returns the goal with the given id, or (nil, nil).
func (r *GoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OverarchingGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM overarching_goals WHERE id = $1`
	return scanGoal(r.pool.QueryRow(ctx, query, id))
}

// ListByCoachingSession returns all goals attached to a coaching session.
func (r *GoalRepository) ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.OverarchingGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM overarching_goals WHERE coaching_session_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, coachingSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.OverarchingGoal
	for rows.Next() {
		var g domain.OverarchingGoal
		if err := rows.Scan(&g.ID, &g.CoachingSessionID, &g.UserID, &g.Title, &g.Body, &g.CompletedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Create inserts a new goal.
func (r *GoalRepository) Create(ctx context.Context, g *domain.OverarchingGoal) error {
	query := `
		INSERT INTO overarching_goals (id, coaching_session_id, user_id, title, body, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		g.ID, g.CoachingSessionID, g.UserID, g.Title, g.Body, g.CompletedAt, g.CreatedAt, g.UpdatedAt)
	return err
}

// Update rewrites the goal's mutable fields and reloads the row into g.
// Returns domain.ErrGoalNotFound when no row matches.
func (r *GoalRepository) Update(ctx context.Context, g *domain.OverarchingGoal) error {
	query := `
		UPDATE overarching_goals
		SET title = $2, body = $3, completed_at = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + goalColumns

	updated, err := scanGoal(r.pool.QueryRow(ctx, query, g.ID, g.Title, g.Body, g.CompletedAt, g.UpdatedAt))
	if err != nil {
		return err
	}
	if updated == nil {
		return domain.ErrGoalNotFound
	}
	*g = *updated
	return nil
}

func scanGoal(row pgx.Row) (*domain.OverarchingGoal, error) {
	var g domain.OverarchingGoal
	err := row.Scan(&g.ID, &g.CoachingSessionID, &g.UserID, &g.Title, &g.Body, &g.CompletedAt, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}
