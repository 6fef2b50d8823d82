package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// CreateIssueRequest describes the creation payload.
type CreateIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Priority    domain.IssuePriority `json:"priority"`
}

// EditIssueRequest describes the editable fields.
type EditIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Priority    domain.IssuePriority `json:"priority"`
}

// AssignIssueRequest names the assignee.
type AssignIssueRequest struct {
	AssigneeEmail string `json:"assignee_email"`
}

// UpdateStatusRequest carries the target status token.
type UpdateStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// AddCommentRequest carries a comment body.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// IssueSummary is the listing view of an issue.
type IssueSummary struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Status          domain.IssueStatus   `json:"status"`
	Priority        domain.IssuePriority `json:"priority"`
	CreatedByEmail  string               `json:"created_by_email"`
	AssignedToEmail *string              `json:"assigned_to_email,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       *time.Time           `json:"updated_at,omitempty"`
}

// IssueDetailResponse is the full view with the comment trail.
type IssueDetailResponse struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Status          domain.IssueStatus   `json:"status"`
	Priority        domain.IssuePriority `json:"priority"`
	CreatedByEmail  string               `json:"created_by_email"`
	AssignedToEmail *string              `json:"assigned_to_email,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       *time.Time           `json:"updated_at,omitempty"`
	Comments        []CommentResponse    `json:"comments"`
}

// CommentResponse is one entry of the comment trail.
type CommentResponse struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
}
