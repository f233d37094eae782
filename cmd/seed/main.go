// Command seed populates a development database with a demo organization,
// a coach and coachee pair, and the coaching relationship between them.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/config"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/db/postgres"
	"github.com/refactor-group/coaching-platform/internal/pkg/password"
	"github.com/refactor-group/coaching-platform/pkg/logger"
)

const demoPassword = "password"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	log.Info().Msg("seeding database")

	now := time.Now().UTC()
	orgID := uuid.New()
	if _, err := pool.Exec(ctx, `
		INSERT INTO organizations (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT DO NOTHING`,
		orgID, "Refactor Coaching", now,
	); err != nil {
		log.Fatal().Err(err).Msg("failed to seed organization")
	}

	coachID := seedUser(ctx, pool, log, "coach@refactorcoach.com", "James", "Hodapp", now)
	coacheeID := seedUser(ctx, pool, log, "coachee@refactorcoach.com", "Caleb", "Bourg", now)

	if _, err := pool.Exec(ctx, `
		INSERT INTO coaching_relationships (id, organization_id, coach_id, coachee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT DO NOTHING`,
		uuid.New(), orgID, coachID, coacheeID, now,
	); err != nil {
		log.Fatal().Err(err).Msg("failed to seed coaching relationship")
	}

	log.Info().
		Str("coach", "coach@refactorcoach.com").
		Str("coachee", "coachee@refactorcoach.com").
		Str("password", demoPassword).
		Msg("database seeded")
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, email, first, last string, now time.Time) uuid.UUID {
	hash, err := password.Hash(demoPassword, password.DefaultParams())
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("failed to hash password")
	}

	id := uuid.New()
	if _, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT DO NOTHING`,
		id, domain.NormalizeEmail(email), first, last, hash, now,
	); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("failed to seed user")
	}
	return id
}
