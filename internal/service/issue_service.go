package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/authz"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssueService coordinates the issue lifecycle. Every operation resolves the
// actor against the authz policy table before touching the store; ownership
// misses surface as NotFound so a customer cannot probe other customers'
// issue ids.
type IssueService struct {
	issues     repository.IssueRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles repositories for the issue service.
type IssueDependencies struct {
	IssueRepo   repository.IssueRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// IssueCreateInput describes the creation payload.
type IssueCreateInput struct {
	Title       string
	Description string
	Priority    domain.IssuePriority
}

// IssueEditInput describes the editable fields.
type IssueEditInput struct {
	Title       string
	Description string
	Priority    domain.IssuePriority
}

// IssueListFilter narrows listings.
type IssueListFilter struct {
	Statuses []domain.IssueStatus
	Limit    int
	Offset   int
}

// Create files a new issue for the acting customer. Status always starts
// Open; priority defaults to Medium.
func (s *IssueService) Create(ctx context.Context, actor *authz.Identity, input IssueCreateInput) (*domain.Issue, error) {
	if _, ok := authz.Resolve(authz.ActionIssueCreate, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot create issues")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.IssuePriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(priority)})
	}

	creatorID := actor.UserID
	issue := &domain.Issue{
		Title:          title,
		Description:    description,
		Status:         domain.IssueStatusOpen,
		Priority:       priority,
		CreatedByID:    &creatorID,
		CreatedByEmail: actor.Email,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueCreatedPayload{
			Title:    issue.Title,
			Priority: issue.Priority,
		},
	})
	return issue, nil
}

// List returns issues visible to the actor: customers see their own,
// engineers and admins see everything.
func (s *IssueService) List(ctx context.Context, actor *authz.Identity, filter IssueListFilter) ([]domain.Issue, error) {
	constraint, ok := authz.Resolve(authz.ActionIssueView, actor.Role)
	if !ok {
		return nil, apperrors.NewForbidden("role cannot list issues")
	}

	repoFilter := repository.IssueFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if constraint.OwnerOnly {
		ownerID := actor.UserID
		repoFilter.CreatedByID = &ownerID
	}
	return s.issues.ListWithFilter(ctx, repoFilter)
}

// ListAssigned returns the actor's assigned issues. Customers have no
// assignment view.
func (s *IssueService) ListAssigned(ctx context.Context, actor *authz.Identity, filter IssueListFilter) ([]domain.Issue, error) {
	constraint, ok := authz.Resolve(authz.ActionIssueView, actor.Role)
	if !ok || constraint.OwnerOnly {
		return nil, apperrors.NewForbidden("role has no assignment view")
	}
	assigneeID := actor.UserID
	return s.issues.ListWithFilter(ctx, repository.IssueFilter{
		AssignedToID: &assigneeID,
		Statuses:     filter.Statuses,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
}

// Get fetches one issue with its comment trail, enforcing visibility scope.
func (s *IssueService) Get(ctx context.Context, actor *authz.Identity, issueID int64) (*domain.Issue, []domain.Comment, error) {
	issue, err := s.fetchVisible(ctx, actor, authz.ActionIssueView, issueID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.comments.ListByIssue(ctx, issue.ID)
	if err != nil {
		return nil, nil, err
	}
	return issue, comments, nil
}

// Edit updates title, description and priority. A customer may edit only
// their own issue and only while it is Open; engineers and admins edit any
// issue in any status.
func (s *IssueService) Edit(ctx context.Context, actor *authz.Identity, issueID int64, input IssueEditInput) (*domain.Issue, error) {
	constraint, ok := authz.Resolve(authz.ActionIssueEdit, actor.Role)
	if !ok {
		return nil, apperrors.NewForbidden("role cannot edit issues")
	}
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if constraint.OwnerOnly && !ownedBy(issue, actor) {
		return nil, apperrors.NewNotFound("issue", nil)
	}
	if constraint.OpenOnly && issue.Status != domain.IssueStatusOpen {
		return nil, apperrors.NewInvalidState("only open issues can be edited")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = issue.Priority
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(priority)})
	}

	issue.Title = title
	issue.Description = description
	issue.Priority = priority
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Assign sets the assignee and, when the issue is still Open, auto-starts it.
// The assignee must exist but their role is not checked; any engineer or
// admin may assign to anyone, not just themselves.
func (s *IssueService) Assign(ctx context.Context, actor *authz.Identity, issueID int64, assigneeEmail string) (*domain.Issue, error) {
	if _, ok := authz.Resolve(authz.ActionIssueAssign, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot assign issues")
	}
	assignee, err := s.users.GetByEmail(ctx, assigneeEmail)
	if err != nil {
		return nil, err
	}
	return s.assignTo(ctx, actor, issueID, assignee.ID, assignee.Email)
}

// Take assigns the issue to the acting engineer.
func (s *IssueService) Take(ctx context.Context, actor *authz.Identity, issueID int64) (*domain.Issue, error) {
	if _, ok := authz.Resolve(authz.ActionIssueAssign, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot assign issues")
	}
	return s.assignTo(ctx, actor, issueID, actor.UserID, actor.Email)
}

func (s *IssueService) assignTo(ctx context.Context, actor *authz.Identity, issueID, assigneeID int64, assigneeEmail string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	autoStarted := false
	issue.AssignedToID = &assigneeID
	issue.AssignedToEmail = &assigneeEmail
	if issue.Status == domain.IssueStatusOpen {
		issue.Status = domain.IssueStatusInProgress
		autoStarted = true
	}
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueAssigned,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueAssignedPayload{
			AssigneeEmail: assigneeEmail,
			AutoStarted:   autoStarted,
		},
	})
	return issue, nil
}

// UpdateStatus moves the issue to any valid status token. Membership in the
// token set is the only check; the current status never restricts the target.
// Customers have no access to this operation.
func (s *IssueService) UpdateStatus(ctx context.Context, actor *authz.Identity, issueID int64, newStatus domain.IssueStatus) (*domain.Issue, error) {
	if _, ok := authz.Resolve(authz.ActionIssueUpdateStatus, actor.Role); !ok {
		return nil, apperrors.NewForbidden("role cannot update status")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewInvalidStatus(string(newStatus))
	}
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	issue.Status = newStatus
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return issue, nil
}

// Close is the customer's direct path to Closed on their own issue,
// independent of UpdateStatus and available from any current status.
func (s *IssueService) Close(ctx context.Context, actor *authz.Identity, issueID int64) (*domain.Issue, error) {
	issue, err := s.fetchVisible(ctx, actor, authz.ActionIssueClose, issueID)
	if err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	issue.Status = domain.IssueStatusClosed
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: issue.Status,
		},
	})
	return issue, nil
}

// AddComment appends to the issue's comment trail. Read access to the issue
// is the only gate; the trail itself is append-only.
func (s *IssueService) AddComment(ctx context.Context, actor *authz.Identity, issueID int64, content string) (*domain.Comment, error) {
	issue, err := s.fetchVisible(ctx, actor, authz.ActionCommentAdd, issueID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewEmptyContent()
	}

	authorID := actor.UserID
	comment := &domain.Comment{
		IssueID:     issue.ID,
		Content:     content,
		AuthorID:    &authorID,
		AuthorEmail: actor.Email,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventIssueCommented,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueCommentedPayload{
			CommentID:   comment.ID,
			BodyPreview: preview(comment.Content, 120),
		},
	})
	return comment, nil
}

// fetchVisible loads an issue applying the action's constraint for the
// actor. An issue outside an owner-only scope reads as NotFound.
func (s *IssueService) fetchVisible(ctx context.Context, actor *authz.Identity, action authz.Action, issueID int64) (*domain.Issue, error) {
	constraint, ok := authz.Resolve(action, actor.Role)
	if !ok {
		return nil, apperrors.NewForbidden("operation not permitted for role")
	}
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if constraint.OwnerOnly && !ownedBy(issue, actor) {
		return nil, apperrors.NewNotFound("issue", nil)
	}
	return issue, nil
}

func ownedBy(issue *domain.Issue, actor *authz.Identity) bool {
	return issue.CreatedByID != nil && *issue.CreatedByID == actor.UserID
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor *authz.Identity) events.Actor {
	return events.Actor{
		UserID: actor.UserID,
		Email:  actor.Email,
		Role:   actor.Role,
	}
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
