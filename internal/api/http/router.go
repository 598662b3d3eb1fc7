package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bountyboard/bounty-service/internal/api/http/handlers"
	"github.com/bountyboard/bounty-service/internal/auth"
	"github.com/bountyboard/bounty-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Bugs           *handlers.BugsHandler
	Submissions    *handlers.SubmissionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Put("/balance", cfg.Users.Deposit)
	authProtected.Get("/profile", cfg.Users.Profile)
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	bugs := app.Group("/bugs")
	bugs.Get("/", cfg.Bugs.ListBugs)
	bugs.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCompany), cfg.Bugs.CreateBug)
	bugs.Get("/:id", cfg.Bugs.GetBug)
	bugs.Get("/:id/history", cfg.Bugs.GetBugHistory)

	submissions := app.Group("/submissions")
	submissions.Post("/submit", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleDeveloper), cfg.Submissions.SubmitSolution)
	submissions.Get("/bug/:bugId", cfg.Submissions.ListForBug)
	submissions.Put("/approve/:id", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Submissions.ApproveSubmission)
	submissions.Put("/reject/:id", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Submissions.RejectSubmission)
}
