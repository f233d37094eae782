package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

// RelationshipRepository implements ports.RelationshipRepository on pgxpool.
// Besides plain CRUD it provides the upward walks (coaching session -> rela-
// tionship, goal -> relationship) the ownership checks re-derive per request.
type RelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

const relationshipColumns = `r.id, r.organization_id, r.coach_id, r.coachee_id, r.created_at, r.updated_at`

// FindByID returns the relationship with the given id, or (nil, nil).
func (r *RelationshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CoachingRelationship, error) {
	query := `SELECT ` + relationshipColumns + ` FROM coaching_relationships r WHERE r.id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByCoachingSession resolves a coaching session id to its owning
// relationship in a single join. Returns (nil, nil) when the session does not
// exist.
func (r *RelationshipRepository) FindByCoachingSession(ctx context.Context, coachingSessionID uuid.UUID) (*domain.CoachingRelationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM coaching_relationships r
		JOIN coaching_sessions s ON s.coaching_relationship_id = r.id
		WHERE s.id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, coachingSessionID))
}

// FindByGoal walks goal -> coaching session -> relationship. Returns
// (nil, nil) when the goal does not exist.
func (r *RelationshipRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) (*domain.CoachingRelationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM coaching_relationships r
		JOIN coaching_sessions s ON s.coaching_relationship_id = r.id
		JOIN overarching_goals g ON g.coaching_session_id = s.id
		WHERE g.id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, goalID))
}

// ListByOrganization returns all relationships belonging to an organization.
func (r *RelationshipRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.CoachingRelationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM coaching_relationships r
		WHERE r.organization_id = $1
		ORDER BY r.created_at
	`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []domain.CoachingRelationship
	for rows.Next() {
		var rel domain.CoachingRelationship
		if err := rows.Scan(&rel.ID, &rel.OrganizationID, &rel.CoachID, &rel.CoacheeID, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

// Create inserts a new relationship; the id and timestamps must already be
// set by the caller.
func (r *RelationshipRepository) Create(ctx context.Context, rel *domain.CoachingRelationship) error {
	query := `
		INSERT INTO coaching_relationships (id, organization_id, coach_id, coachee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		rel.ID, rel.OrganizationID, rel.CoachID, rel.CoacheeID, rel.CreatedAt, rel.UpdatedAt)
	return err
}

func (r *RelationshipRepository) scanOne(row pgx.Row) (*domain.CoachingRelationship, error) {
	var rel domain.CoachingRelationship
	err := row.Scan(&rel.ID, &rel.OrganizationID, &rel.CoachID, &rel.CoacheeID, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}
