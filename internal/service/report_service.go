package service

import (
	"context"
	"time"

	"github.com/spec-kit/issue-tracker/internal/authz"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/export"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const (
	overdueAge   = 7 * 24 * time.Hour
	trendDays    = 7
	recentIssues = 5
	dayLayout    = "2006-01-02"
)

// ReportService computes read-side projections. Everything is derived from
// current issue and user state on each call; nothing is stored or cached.
type ReportService struct {
	stats  repository.StatsRepository
	users  repository.UserRepository
	issues repository.IssueRepository
	now    func() time.Time
}

// NewReportService constructs the service.
func NewReportService(stats repository.StatsRepository, users repository.UserRepository, issues repository.IssueRepository) *ReportService {
	return &ReportService{stats: stats, users: users, issues: issues, now: time.Now}
}

// AdminDashboard aggregates issue and user counts for the admin view.
// ClosedIssues folds Resolved in, so open+inProgress+closed always equals
// the total.
type AdminDashboard struct {
	TotalIssues      int
	OpenIssues       int
	InProgressIssues int
	ClosedIssues     int
	CustomersCount   int
	EngineersCount   int
	AdminsCount      int
	RecentIssues     []domain.Issue
}

// EngineerDashboard aggregates workload numbers for one engineer.
type EngineerDashboard struct {
	TotalIssues         int
	MyAssignedIssues    int
	UnassignedIssues    int
	InProgressIssues    int
	ResolvedIssues      int
	OverdueIssues       int
	HighPriorityCount   int
	MediumPriorityCount int
	LowPriorityCount    int
}

// TrendPoint is one calendar day of created-vs-resolved counts.
type TrendPoint struct {
	Day      string
	Created  int
	Resolved int
}

// Admin builds the admin dashboard projection.
func (s *ReportService) Admin(ctx context.Context, actor *authz.Identity) (*AdminDashboard, error) {
	if _, ok := authz.Resolve(authz.ActionReportAdmin, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot view admin reports")
	}

	total, err := s.stats.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.stats.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.issues.ListRecent(ctx, recentIssues)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalIssues:      total,
		OpenIssues:       byStatus[domain.IssueStatusOpen],
		InProgressIssues: byStatus[domain.IssueStatusInProgress],
		ClosedIssues:     byStatus[domain.IssueStatusResolved] + byStatus[domain.IssueStatusClosed],
		CustomersCount:   byRole[domain.RoleCustomer],
		EngineersCount:   byRole[domain.RoleEngineer],
		AdminsCount:      byRole[domain.RoleAdmin],
		RecentIssues:     recent,
	}, nil
}

// Engineer builds the workload projection for the acting engineer. Overdue
// means still Open or InProgress and created more than seven days ago; the
// priority breakdown covers only the actor's own assigned issues.
func (s *ReportService) Engineer(ctx context.Context, actor *authz.Identity) (*EngineerDashboard, error) {
	if _, ok := authz.Resolve(authz.ActionReportView, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot view workload reports")
	}

	total, err := s.stats.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	assigned, err := s.stats.CountAssignedTo(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	unassigned, err := s.stats.CountUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.stats.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.stats.CountOverdue(ctx, s.now().Add(-overdueAge))
	if err != nil {
		return nil, err
	}
	byPriority, err := s.stats.PriorityCountsForAssignee(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	return &EngineerDashboard{
		TotalIssues:         total,
		MyAssignedIssues:    assigned,
		UnassignedIssues:    unassigned,
		InProgressIssues:    byStatus[domain.IssueStatusInProgress],
		ResolvedIssues:      byStatus[domain.IssueStatusResolved],
		OverdueIssues:       overdue,
		HighPriorityCount:   byPriority[domain.IssuePriorityHigh],
		MediumPriorityCount: byPriority[domain.IssuePriorityMedium],
		LowPriorityCount:    byPriority[domain.IssuePriorityLow],
	}, nil
}

// ExportCSV renders the full issue set as the admin CSV report, newest
// first, plus the suggested attachment file name.
func (s *ReportService) ExportCSV(ctx context.Context, actor *authz.Identity) ([]byte, string, error) {
	if _, ok := authz.Resolve(authz.ActionReportExport, actor.Role); !ok {
		return nil, "", apperrors.NewForbidden("role cannot export reports")
	}
	issues, err := s.issues.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	name := export.FileName(s.now().Format("20060102"))
	return export.IssuesCSV(issues), name, nil
}

// Trend returns the last seven calendar days of created-vs-resolved counts,
// oldest first, with zero-filled gaps.
func (s *ReportService) Trend(ctx context.Context, actor *authz.Identity) ([]TrendPoint, error) {
	if _, ok := authz.Resolve(authz.ActionReportView, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot view trend reports")
	}

	today := s.now().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(trendDays - 1))

	created, err := s.stats.CreatedPerDay(ctx, from)
	if err != nil {
		return nil, err
	}
	resolved, err := s.stats.ResolvedPerDay(ctx, from)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		day := from.AddDate(0, 0, i).Format(dayLayout)
		points = append(points, TrendPoint{
			Day:      day,
			Created:  created[day],
			Resolved: resolved[day],
		})
	}
	return points, nil
}
