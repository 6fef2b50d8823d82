package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Issues         *handlers.IssuesHandler
	Staff          *handlers.StaffIssuesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The /issues group is the customer
// surface, /staff the engineer surface and /admin the admin surface; admins
// pass the engineer and customer gates through the role hierarchy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	issues := app.Group("/issues", cfg.AuthMiddleware.Handle)
	issues.Post("", cfg.Issues.CreateIssue)
	issues.Get("", cfg.Issues.ListIssues)
	issues.Get("/:id", cfg.Issues.GetIssue)
	issues.Put("/:id", cfg.Issues.EditIssue)
	issues.Post("/:id/close", cfg.Issues.CloseIssue)
	issues.Post("/:id/comments", cfg.Issues.AddComment)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleEngineer))
	staff.Get("/dashboard", cfg.Staff.Dashboard)
	staff.Get("/engineers", cfg.Staff.ListEngineers)
	staff.Get("/issues", cfg.Staff.ListIssues)
	staff.Get("/issues/assigned", cfg.Staff.ListAssigned)
	staff.Get("/issues/:id", cfg.Staff.GetIssue)
	staff.Put("/issues/:id", cfg.Staff.EditIssue)
	staff.Put("/issues/:id/status", cfg.Staff.UpdateStatus)
	staff.Post("/issues/:id/assign", cfg.Staff.AssignIssue)
	staff.Post("/issues/:id/take", cfg.Staff.TakeIssue)
	staff.Post("/issues/:id/comments", cfg.Staff.AddComment)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleAdmin))
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Put("/users/:id/role", cfg.Admin.ChangeRole)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/reports/export", cfg.Admin.ExportIssues)
	admin.Get("/reports/trend", cfg.Admin.Trend)
}
