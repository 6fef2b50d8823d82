package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contract, including pgx.ErrNoRows on misses, so services under test see
// the same error surface as in production.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context) (map[domain.Role]int, error) {
	counts := make(map[domain.Role]int)
	for _, user := range f.users {
		counts[user.Role]++
	}
	return counts, nil
}

func (f *fakeUserRepo) add(email string, role domain.Role) *domain.User {
	user := &domain.User{Email: email, PasswordHash: "x", Role: role}
	_ = f.Create(context.Background(), user)
	return user
}

type fakeIssueRepo struct {
	nextID int64
	issues map[int64]*domain.Issue
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[int64]*domain.Issue)}
}

func (f *fakeIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	f.nextID++
	issue.ID = f.nextID
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now()
	}
	clone := *issue
	f.issues[issue.ID] = &clone
	return nil
}

func (f *fakeIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := f.issues[issue.ID]; !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	issue.UpdatedAt = &now
	clone := *issue
	f.issues[issue.ID] = &clone
	return nil
}

func (f *fakeIssueRepo) GetByID(_ context.Context, id int64) (*domain.Issue, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *issue
	return &clone, nil
}

func (f *fakeIssueRepo) ListWithFilter(_ context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	out := make([]domain.Issue, 0)
	for _, issue := range f.issues {
		if filter.CreatedByID != nil && (issue.CreatedByID == nil || *issue.CreatedByID != *filter.CreatedByID) {
			continue
		}
		if filter.AssignedToID != nil && (issue.AssignedToID == nil || *issue.AssignedToID != *filter.AssignedToID) {
			continue
		}
		if filter.Unassigned && issue.AssignedToID != nil {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(issue.Status, filter.Statuses) {
			continue
		}
		out = append(out, *issue)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeIssueRepo) ListRecent(ctx context.Context, limit int) ([]domain.Issue, error) {
	return f.ListWithFilter(ctx, repository.IssueFilter{Limit: limit})
}

func (f *fakeIssueRepo) ListAll(ctx context.Context) ([]domain.Issue, error) {
	return f.ListWithFilter(ctx, repository.IssueFilter{Limit: len(f.issues)})
}

func statusIn(status domain.IssueStatus, set []domain.IssueStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

type fakeCommentRepo struct {
	nextID   int64
	comments []domain.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByIssue(_ context.Context, issueID int64) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	for _, comment := range f.comments {
		if comment.IssueID == issueID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type fakeStatsRepo struct {
	total      int
	byStatus   map[domain.IssueStatus]int
	assigned   map[int64]int
	unassigned int
	overdue    int
	byPriority map[int64]map[domain.IssuePriority]int
	created    map[string]int
	resolved   map[string]int
}

func (f *fakeStatsRepo) CountAll(context.Context) (int, error) { return f.total, nil }

func (f *fakeStatsRepo) CountByStatus(context.Context) (map[domain.IssueStatus]int, error) {
	return f.byStatus, nil
}

func (f *fakeStatsRepo) CountAssignedTo(_ context.Context, userID int64) (int, error) {
	return f.assigned[userID], nil
}

func (f *fakeStatsRepo) CountUnassigned(context.Context) (int, error) { return f.unassigned, nil }

func (f *fakeStatsRepo) CountOverdue(context.Context, time.Time) (int, error) {
	return f.overdue, nil
}

func (f *fakeStatsRepo) PriorityCountsForAssignee(_ context.Context, userID int64) (map[domain.IssuePriority]int, error) {
	return f.byPriority[userID], nil
}

func (f *fakeStatsRepo) CreatedPerDay(context.Context, time.Time) (map[string]int, error) {
	return f.created, nil
}

func (f *fakeStatsRepo) ResolvedPerDay(context.Context, time.Time) (map[string]int, error) {
	return f.resolved, nil
}

type fakeSessionStore struct {
	sessions map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]int64)}
}

func (f *fakeSessionStore) Create(_ context.Context, sessionID string, userID int64, _ time.Duration) error {
	f.sessions[sessionID] = userID
	return nil
}

func (f *fakeSessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := f.sessions[sessionID]
	return ok, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) lastEvent() *events.Event {
	if len(d.published) == 0 {
		return nil
	}
	return &d.published[len(d.published)-1]
}

func zapNop() *zap.Logger {
	return zap.NewNop()
}
