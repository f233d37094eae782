package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/refactor-group/coaching-platform/docs"
	"github.com/refactor-group/coaching-platform/internal/api/handler"
	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/service"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/config"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/db/postgres"
	redisstore "github.com/refactor-group/coaching-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The session service it returns is the same instance wired into the auth
// middleware; the caller owns its reaper loop.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *service.SessionService) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coaching"))

	// --- Repositories ---
	identityRepo := postgres.NewIdentityRepository(pool)
	relationshipRepo := postgres.NewRelationshipRepository(pool)
	sessionStore := redisstore.NewSessionStore(rdb, cfg.Session.Window, cfg.Session.StoreTimeout)

	// --- Services ---
	authService := service.NewAuthService(identityRepo, log)
	sessionService := service.NewSessionService(sessionStore, authService, cfg.Session.Window, log)
	ownershipService := service.NewOwnershipService(relationshipRepo)
	coachingService := service.NewCoachingService(service.CoachingRepositories{
		Organizations:    postgres.NewOrganizationRepository(pool),
		Relationships:    relationshipRepo,
		CoachingSessions: postgres.NewCoachingSessionRepository(pool),
		Goals:            postgres.NewGoalRepository(pool),
		Notes:            postgres.NewNoteRepository(pool),
		Agreements:       postgres.NewAgreementRepository(pool),
		Actions:          postgres.NewActionRepository(pool),
	}, log)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(authService, sessionService, cfg.Session.Window, cfg.Session.CookieSecure)
	organizationHandler := handler.NewOrganizationHandler(coachingService)
	relationshipHandler := handler.NewRelationshipHandler(coachingService)
	coachingSessionHandler := handler.NewCoachingSessionHandler(coachingService)
	goalHandler := handler.NewGoalHandler(coachingService)
	noteHandler := handler.NewNoteHandler(coachingService)
	agreementHandler := handler.NewAgreementHandler(coachingService)
	actionHandler := handler.NewActionHandler(coachingService)

	// --- Health probes and operational surface (no version gate, no auth) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Middleware chains ---
	versionGate := middleware.Version(cfg.VersionHeader, cfg.APIVersion)
	requireAuth := middleware.Auth(sessionService)
	relationshipGuard := middleware.RequireRelationshipAccess(ownershipService)
	coachingSessionGuard := middleware.RequireCoachingSessionAccess(ownershipService)
	goalGuard := middleware.RequireGoalAccess(ownershipService)

	// Login is the one business route outside the version gate: a client has
	// to be able to establish a session before it can negotiate anything else.
	e.POST("/login", sessionHandler.Login)

	// Every other business route sits behind the version gate and requires an
	// authenticated session.
	v := e.Group("", versionGate)

	v.GET("/logout", sessionHandler.Logout, requireAuth)
	v.GET("/protected", sessionHandler.Protected, requireAuth)

	// --- Organizations ---
	orgs := v.Group("/organizations", requireAuth)
	orgs.GET("", organizationHandler.List)
	orgs.GET("/:id", organizationHandler.Get)

	// --- Coaching relationships ---
	rels := v.Group("/coaching_relationships", requireAuth)
	rels.GET("", relationshipHandler.List)
	rels.POST("", relationshipHandler.Create)
	rels.GET("/:"+middleware.RelationshipIDParam, relationshipHandler.Get, relationshipGuard)

	// --- Coaching sessions (listed and created within a relationship) ---
	sessions := v.Group("/coaching_sessions", requireAuth)
	sessions.GET("", coachingSessionHandler.List, relationshipGuard)
	sessions.POST("", coachingSessionHandler.Create, relationshipGuard)
	sessions.GET("/:"+middleware.CoachingSessionIDParam, coachingSessionHandler.Get, coachingSessionGuard)

	// --- Overarching goals ---
	goals := v.Group("/overarching_goals", requireAuth)
	goals.GET("", goalHandler.List, coachingSessionGuard)
	goals.POST("", goalHandler.Create, coachingSessionGuard)
	goals.GET("/:"+middleware.GoalIDParam, goalHandler.Get, goalGuard)
	goals.PUT("/:"+middleware.GoalIDParam, goalHandler.Update, goalGuard)

	// --- Session artifacts (notes, agreements, actions) ---
	// All guarded by the owning coaching session, passed as a query param.
	notes := v.Group("/notes", requireAuth, coachingSessionGuard)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PUT("/:id", noteHandler.Update)

	agreements := v.Group("/agreements", requireAuth, coachingSessionGuard)
	agreements.GET("", agreementHandler.List)
	agreements.POST("", agreementHandler.Create)
	agreements.PUT("/:id", agreementHandler.Update)

	actions := v.Group("/actions", requireAuth, coachingSessionGuard)
	actions.GET("", actionHandler.List)
	actions.POST("", actionHandler.Create)
	actions.PUT("/:id", actionHandler.Update)

	return e, sessionService
}
