package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// StaffIssuesHandler manages the engineer-side issue endpoints: the full
// queue, assignment and status transitions.
type StaffIssuesHandler struct {
	issues  *service.IssueService
	reports *service.ReportService
	users   *service.UserAdminService
}

// NewStaffIssuesHandler constructs handler.
func NewStaffIssuesHandler(issueService *service.IssueService, reportService *service.ReportService, userService *service.UserAdminService) *StaffIssuesHandler {
	return &StaffIssuesHandler{issues: issueService, reports: reportService, users: userService}
}

// ListIssues GET /staff/issues. Engineers see the whole queue.
func (h *StaffIssuesHandler) ListIssues(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issues, err := h.issues.List(c.Context(), identity, parseIssueQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummaries(issues)})
}

// ListAssigned GET /staff/issues/assigned.
func (h *StaffIssuesHandler) ListAssigned(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issues, err := h.issues.ListAssigned(c.Context(), identity, parseIssueQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummaries(issues)})
}

// GetIssue GET /staff/issues/:id.
func (h *StaffIssuesHandler) GetIssue(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	issue, comments, err := h.issues.Get(c.Context(), identity, issueID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueDetail(issue, comments)})
}

// EditIssue PUT /staff/issues/:id.
func (h *StaffIssuesHandler) EditIssue(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	var req dto.EditIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.issues.Edit(c.Context(), identity, issueID, service.IssueEditInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummary(issue)})
}

// AssignIssue POST /staff/issues/:id/assign.
func (h *StaffIssuesHandler) AssignIssue(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	var req dto.AssignIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeEmail == "" {
		return apperrors.NewValidationError("assignee_email required", nil)
	}

	issue, err := h.issues.Assign(c.Context(), identity, issueID, req.AssigneeEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummary(issue)})
}

// TakeIssue POST /staff/issues/:id/take.
func (h *StaffIssuesHandler) TakeIssue(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	issue, err := h.issues.Take(c.Context(), identity, issueID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummary(issue)})
}

// UpdateStatus PUT /staff/issues/:id/status.
func (h *StaffIssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.issues.UpdateStatus(c.Context(), identity, issueID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueSummary(issue)})
}

// AddComment POST /staff/issues/:id/comments.
func (h *StaffIssuesHandler) AddComment(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	issueID, err := parseIssueID(c)
	if err != nil {
		return err
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.issues.AddComment(c.Context(), identity, issueID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// Dashboard GET /staff/dashboard.
func (h *StaffIssuesHandler) Dashboard(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	dashboard, err := h.reports.Engineer(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EngineerDashboardResponse{
		TotalIssues:         dashboard.TotalIssues,
		MyAssignedIssues:    dashboard.MyAssignedIssues,
		UnassignedIssues:    dashboard.UnassignedIssues,
		InProgressIssues:    dashboard.InProgressIssues,
		ResolvedIssues:      dashboard.ResolvedIssues,
		OverdueIssues:       dashboard.OverdueIssues,
		HighPriorityCount:   dashboard.HighPriorityCount,
		MediumPriorityCount: dashboard.MediumPriorityCount,
		LowPriorityCount:    dashboard.LowPriorityCount,
	}})
}

// ListEngineers GET /staff/engineers, for the assignment picker.
func (h *StaffIssuesHandler) ListEngineers(c *fiber.Ctx) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	engineers, err := h.users.ListEngineers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(engineers))
	for i := range engineers {
		items = append(items, userSummary(&engineers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
