package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// AgreementRepository implements ports.AgreementRepository on pgxpool.
type AgreementRepository struct {
	pool *pgxpool.Pool
}

func NewAgreementRepository(pool *pgxpool.Pool) *AgreementRepository {
	return &AgreementRepository{pool: pool}
}

func (r *AgreementRepository) ListByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) ([]domain.Agreement, error) {
	query := `
		SELECT id, coaching_session_id, user_id, body, created_at, updated_at
		FROM agreements WHERE coaching_session_id = $1 ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, coachingSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []domain.Agreement
	for rows.Next() {
		var a domain.Agreement
		if err := rows.Scan(&a.ID, &a.CoachingSessionID, &a.UserID, &a.Body, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		agreements = append(agreements, a)
	}
	return agreements, rows.Err()
}

func (r *AgreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	query := `
		INSERT INTO agreements (id, coaching_session_id, user_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query, a.ID, a.CoachingSessionID, a.UserID, a.Body, a.CreatedAt, a.UpdatedAt)
	return err
}

// Update rewrites the agreement body and reloads the row into a. The match is
// constrained to the agreement's coaching session so an id from another
// session can never be rewritten. Returns domain.ErrAgreementNotFound when no
// row matches.
func (r *AgreementRepository) Update(ctx context.Context, a *domain.Agreement) error {
	query := `
		UPDATE agreements SET body = $3, updated_at = $4
		WHERE id = $1 AND coaching_session_id = $2
		RETURNING id, coaching_session_id, user_id, body, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, a.ID, a.CoachingSessionID, a.Body, a.UpdatedAt).
		Scan(&a.ID, &a.CoachingSessionID, &a.UserID, &a.Body, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAgreementNotFound
		}
		return err
	}
	return nil
}
