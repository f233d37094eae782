package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// OrganizationRepository implements ports.OrganizationRepository on pgxpool.
type OrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

// FindByID returns the organization with the given id, or (nil, nil).
func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT id, name, logo, created_at, updated_at FROM organizations WHERE id = $1`

	var org domain.Organization
	err := r.pool.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.LogoURL, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

// ListForIdentity returns every organization in which the identity appears as
// coach or coachee of at least one relationship.
func (r *OrganizationRepository) ListForIdentity(ctx context.Context, identityID uuid.UUID) ([]domain.Organization, error) {
	query := `
		SELECT DISTINCT o.id, o.name, o.logo, o.created_at, o.updated_at
		FROM organizations o
		JOIN coaching_relationships r ON r.organization_id = o.id
		WHERE r.coach_id = $1 OR r.coachee_id = $1
		ORDER BY o.name
	`
	rows, err := r.pool.Query(ctx, query, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.LogoURL, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}
