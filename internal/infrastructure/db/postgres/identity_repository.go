package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// IdentityRepository implements ports.IdentityRepository on pgxpool. This
// subsystem only reads the users table; provisioning and password changes
// happen elsewhere.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

const identityColumns = `id, email, first_name, last_name, password_hash, created_at, updated_at`

// FindByEmail returns the identity whose email exactly matches the normalized
// form of the given login key. Returns (nil, nil) when no identity matches.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

// FindByID returns the identity with the given primary key, or (nil, nil).
func (r *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *IdentityRepository) scanOne(row pgx.Row) (*domain.Identity, error) {
	var ident domain.Identity
	err := row.Scan(
		&ident.ID, &ident.Email, &ident.FirstName, &ident.LastName,
		&ident.PasswordHash, &ident.CreatedAt, &ident.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ident, nil
}
