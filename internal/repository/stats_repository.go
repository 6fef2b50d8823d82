package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// TrendPoint is one calendar day of the created-vs-resolved series.
type TrendPoint struct {
	Day      time.Time
	Created  int
	Resolved int
}

// StatsRepository exposes the count-with-predicate primitives reporting is
// built on. Every value is computed from current state on each call; nothing
// is persisted or cached.
type StatsRepository interface {
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[domain.IssueStatus]int, error)
	CountAssignedTo(ctx context.Context, userID int64) (int, error)
	CountUnassigned(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, cutoff time.Time) (int, error)
	PriorityCountsForAssignee(ctx context.Context, userID int64) (map[domain.IssuePriority]int, error)
	CreatedPerDay(ctx context.Context, from time.Time) (map[string]int, error)
	ResolvedPerDay(ctx context.Context, from time.Time) (map[string]int, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) CountAll(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM issues`)
}

func (r *statsRepository) CountByStatus(ctx context.Context) (map[domain.IssueStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM issues GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.IssueStatus]int)
	for rows.Next() {
		var status domain.IssueStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) CountAssignedTo(ctx context.Context, userID int64) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM issues WHERE assigned_to=$1`, userID)
}

func (r *statsRepository) CountUnassigned(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM issues WHERE assigned_to IS NULL`)
}

// CountOverdue counts issues still Open or InProgress that were created
// before the cutoff.
func (r *statsRepository) CountOverdue(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM issues
        WHERE status IN ('OPEN','IN_PROGRESS') AND created_at < $1`
	return r.countRow(ctx, query, cutoff)
}

func (r *statsRepository) PriorityCountsForAssignee(ctx context.Context, userID int64) (map[domain.IssuePriority]int, error) {
	const query = `SELECT priority, COUNT(*) FROM issues WHERE assigned_to=$1 GROUP BY priority`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.IssuePriority]int)
	for rows.Next() {
		var priority domain.IssuePriority
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[priority] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) CreatedPerDay(ctx context.Context, from time.Time) (map[string]int, error) {
	const query = `
        SELECT TO_CHAR(created_at, 'YYYY-MM-DD'), COUNT(*)
        FROM issues WHERE created_at >= $1
        GROUP BY 1`
	return r.perDay(ctx, query, from)
}

// ResolvedPerDay groups by the last mutation date of issues that ended up
// Resolved or Closed. updated_at stands in for a resolution timestamp, which
// the schema does not track separately.
func (r *statsRepository) ResolvedPerDay(ctx context.Context, from time.Time) (map[string]int, error) {
	const query = `
        SELECT TO_CHAR(updated_at, 'YYYY-MM-DD'), COUNT(*)
        FROM issues
        WHERE status IN ('RESOLVED','CLOSED') AND updated_at >= $1
        GROUP BY 1`
	return r.perDay(ctx, query, from)
}

func (r *statsRepository) perDay(ctx context.Context, query string, from time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
