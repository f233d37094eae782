package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// NoteRepository implements ports.NoteRepository on pgxpool.
type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Note, error) {
	query := `
		SELECT id, coaching_session_id, user_id, body, created_at, updated_at
		FROM notes WHERE coaching_session_id = $1 ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, coachingSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.CoachingSessionID, &n.UserID, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	query := `
		INSERT INTO notes (id, coaching_session_id, user_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query, n.ID, n.CoachingSessionID, n.UserID, n.Body, n.CreatedAt, n.UpdatedAt)
	return err
}

// Update rewrites the note body and reloads the row into n. The match is
// constrained to the note's coaching session so an id from another session
// can never be rewritten. Returns domain.ErrNoteNotFound when no row matches.
func (r *NoteRepository) Update(ctx context.Context, n *domain.Note) error {
	query := `
		UPDATE notes SET body = $3, updated_at = $4
		WHERE id = $1 AND coaching_session_id = $2
		RETURNING id, coaching_session_id, user_id, body, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, n.ID, n.CoachingSessionID, n.Body, n.UpdatedAt).
		Scan(&n.ID, &n.CoachingSessionID, &n.UserID, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNoteNotFound
		}
		return err
	}
	return nil
}
