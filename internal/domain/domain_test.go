package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []IssueStatus{IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed} {
		assert.True(t, ValidStatus(status), "status %s", status)
	}
	assert.False(t, ValidStatus(IssueStatus("ARCHIVED")))
	assert.False(t, ValidStatus(IssueStatus("open")))
	assert.False(t, ValidStatus(IssueStatus("")))
}

func TestValidPriority(t *testing.T) {
	for _, priority := range []IssuePriority{IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh} {
		assert.True(t, ValidPriority(priority), "priority %s", priority)
	}
	assert.False(t, ValidPriority(IssuePriority("URGENT")))
	assert.False(t, ValidPriority(IssuePriority("")))
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleEngineer, RoleAdmin} {
		assert.True(t, ValidRole(role), "role %s", role)
	}
	assert.False(t, ValidRole(Role("OWNER")))
	assert.False(t, ValidRole(Role("admin")))
}
