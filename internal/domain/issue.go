package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

// ValidStatus reports whether the value is one of the four status tokens.
// Status is validated by membership only; any authorized actor may move an
// issue to any valid status regardless of its current one.
func ValidStatus(status IssueStatus) bool {
	switch status {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	default:
		return false
	}
}

// IssuePriority enumerates urgency levels.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "LOW"
	IssuePriorityMedium IssuePriority = "MEDIUM"
	IssuePriorityHigh   IssuePriority = "HIGH"
)

// ValidPriority reports whether the value is a known priority.
func ValidPriority(priority IssuePriority) bool {
	switch priority {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh:
		return true
	default:
		return false
	}
}

// Issue is the aggregate for reported problems. CreatedByEmail is an
// immutable snapshot taken at creation so the creator reference survives
// account deletion; CreatedByID and AssignedToID are the relational links.
type Issue struct {
	ID              int64
	Title           string
	Description     string
	Status          IssueStatus
	Priority        IssuePriority
	CreatedByID     *int64
	CreatedByEmail  string
	AssignedToID    *int64
	AssignedToEmail *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
