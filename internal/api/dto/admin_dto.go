package dto

import "github.com/spec-kit/issue-tracker/internal/domain"

// ChangeRoleRequest carries the target role.
type ChangeRoleRequest struct {
	Role domain.Role `json:"role"`
}

// AdminDashboardResponse mirrors the admin dashboard projection.
type AdminDashboardResponse struct {
	TotalIssues      int            `json:"total_issues"`
	OpenIssues       int            `json:"open_issues"`
	InProgressIssues int            `json:"in_progress_issues"`
	ClosedIssues     int            `json:"closed_issues"`
	CustomersCount   int            `json:"customers_count"`
	EngineersCount   int            `json:"engineers_count"`
	AdminsCount      int            `json:"admins_count"`
	RecentIssues     []IssueSummary `json:"recent_issues"`
}

// EngineerDashboardResponse mirrors the engineer workload projection.
type EngineerDashboardResponse struct {
	TotalIssues         int `json:"total_issues"`
	MyAssignedIssues    int `json:"my_assigned_issues"`
	UnassignedIssues    int `json:"unassigned_issues"`
	InProgressIssues    int `json:"in_progress_issues"`
	ResolvedIssues      int `json:"resolved_issues"`
	OverdueIssues       int `json:"overdue_issues"`
	HighPriorityCount   int `json:"high_priority_count"`
	MediumPriorityCount int `json:"medium_priority_count"`
	LowPriorityCount    int `json:"low_priority_count"`
}

// TrendPointResponse is one day of the created-vs-resolved series.
type TrendPointResponse struct {
	Day      string `json:"day"`
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}
