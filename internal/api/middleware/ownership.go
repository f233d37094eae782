package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/metrics"
	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// Query parameters the ownership guards read resource ids from.
const (
	RelationshipIDParam    = "coaching_relationship_id"
	CoachingSessionIDParam = "coaching_session_id"
	GoalIDParam            = "overarching_goal_id"
)

type checkFunc func(ctx context.Context, identityID, resourceID uuid.UUID) error

// RequireRelationshipAccess forwards the request only when the authenticated
// identity is the coach or coachee of the relationship named by the
// coaching_relationship_id query parameter.
func RequireRelationshipAccess(owners ports.OwnershipService) echo.MiddlewareFunc {
	return guard("relationship", RelationshipIDParam, owners.CheckRelationship)
}

// RequireCoachingSessionAccess guards routes scoped to a coaching session,
// resolving the session up to its owning relationship.
func RequireCoachingSessionAccess(owners ports.OwnershipService) echo.MiddlewareFunc {
	return guard("coaching_session", CoachingSessionIDParam, owners.CheckCoachingSession)
}

// RequireGoalAccess guards routes scoped to an overarching goal, walking
// goal -> coaching session -> relationship.
func RequireGoalAccess(owners ports.OwnershipService) echo.MiddlewareFunc {
	return guard("goal", GoalIDParam, owners.CheckGoal)
}

// guard builds the shared guard pipeline: parse the resource id, re-derive
// the ownership chain, and either forward the request untouched or
// short-circuit with the mapped status. The chain is recomputed on every
// request; caching it would go stale under concurrent relationship edits.
func guard(resource, param string, check checkFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.QueryParam(param)
			if raw == "" {
				raw = c.Param(param)
			}
			if raw == "" {
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "bad_request").Inc()
				return echo.NewHTTPError(http.StatusBadRequest, param+" is required")
			}

			resourceID, err := uuid.Parse(raw)
			if err != nil {
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "bad_request").Inc()
				return echo.NewHTTPError(http.StatusBadRequest, param+" is not a valid id")
			}

			identity, err := CurrentIdentity(c)
			if err != nil {
				return err
			}

			switch err := check(c.Request().Context(), identity.ID, resourceID); {
			case err == nil:
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "allowed").Inc()
				return next(c)
			case errors.Is(err, domain.ErrUnauthorized):
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "denied").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			case errors.Is(err, domain.ErrRelationshipNotFound),
				errors.Is(err, domain.ErrCoachingSessionNotFound),
				errors.Is(err, domain.ErrGoalNotFound):
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "not_found").Inc()
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			default:
				metrics.GuardDecisionsTotal.WithLabelValues(resource, "error").Inc()
				return err
			}
		}
	}
}
