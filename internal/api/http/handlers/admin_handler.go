package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// AdminHandler manages user administration and reporting endpoints.
type AdminHandler struct {
	users   *service.UserAdminService
	reports *service.ReportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(userService *service.UserAdminService, reportService *service.ReportService) *AdminHandler {
	return &AdminHandler{users: userService, reports: reportService}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	users, err := h.users.ListUsers(c.Context(), identity)
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, userSummary(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ChangeRole PUT /admin/users/:id/role.
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.ChangeRole(c.Context(), identity, userID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummary(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Context(), identity, userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Dashboard GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	dashboard, err := h.reports.Admin(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AdminDashboardResponse{
		TotalIssues:      dashboard.TotalIssues,
		OpenIssues:       dashboard.OpenIssues,
		InProgressIssues: dashboard.InProgressIssues,
		ClosedIssues:     dashboard.ClosedIssues,
		CustomersCount:   dashboard.CustomersCount,
		EngineersCount:   dashboard.EngineersCount,
		AdminsCount:      dashboard.AdminsCount,
		RecentIssues:     issueSummaries(dashboard.RecentIssues),
	}})
}

// ExportIssues GET /admin/reports/export. Streams the issue set as a CSV
// attachment.
func (h *AdminHandler) ExportIssues(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	data, fileName, err := h.reports.ExportCSV(c.Context(), identity)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(data)
}

// Trend GET /admin/reports/trend.
func (h *AdminHandler) Trend(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	points, err := h.reports.Trend(c.Context(), identity)
	if err != nil {
		return err
	}
	items := make([]dto.TrendPointResponse, 0, len(points))
	for _, p := range points {
		items = append(items, dto.TrendPointResponse{
			Day:      p.Day,
			Created:  p.Created,
			Resolved: p.Resolved,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}
