package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		role    domain.Role
		want    Constraint
		granted bool
	}{
		{"customer creates", ActionIssueCreate, domain.RoleCustomer, Constraint{}, true},
		{"engineer cannot create", ActionIssueCreate, domain.RoleEngineer, Constraint{}, false},
		{"customer view is owner scoped", ActionIssueView, domain.RoleCustomer, Constraint{OwnerOnly: true}, true},
		{"engineer view is unscoped", ActionIssueView, domain.RoleEngineer, Constraint{}, true},
		{"customer edit is owner and open scoped", ActionIssueEdit, domain.RoleCustomer, Constraint{OwnerOnly: true, OpenOnly: true}, true},
		{"engineer edit is unscoped", ActionIssueEdit, domain.RoleEngineer, Constraint{}, true},
		{"customer cannot assign", ActionIssueAssign, domain.RoleCustomer, Constraint{}, false},
		{"engineer assigns", ActionIssueAssign, domain.RoleEngineer, Constraint{}, true},
		{"customer cannot update status", ActionIssueUpdateStatus, domain.RoleCustomer, Constraint{}, false},
		{"customer close is owner scoped", ActionIssueClose, domain.RoleCustomer, Constraint{OwnerOnly: true}, true},
		{"engineer has no close path", ActionIssueClose, domain.RoleEngineer, Constraint{}, false},
		{"customer comment is owner scoped", ActionCommentAdd, domain.RoleCustomer, Constraint{OwnerOnly: true}, true},
		{"engineer cannot manage users", ActionUserManage, domain.RoleEngineer, Constraint{}, false},
		{"admin manages users", ActionUserManage, domain.RoleAdmin, Constraint{}, true},
		{"engineer cannot export", ActionReportExport, domain.RoleEngineer, Constraint{}, false},
		{"unknown action denied", Action("issue.archive"), domain.RoleAdmin, Constraint{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraint, granted := Resolve(tt.action, tt.role)
			assert.Equal(t, tt.granted, granted)
			assert.Equal(t, tt.want, constraint)
		})
	}
}

func TestResolveAdminFallThrough(t *testing.T) {
	// Admin is granted every known action unconstrained, even where the
	// table names no admin entry.
	for _, action := range []Action{
		ActionIssueCreate, ActionIssueView, ActionIssueEdit, ActionIssueAssign,
		ActionIssueUpdateStatus, ActionIssueClose, ActionCommentAdd,
		ActionUserManage, ActionReportView, ActionReportAdmin, ActionReportExport,
	} {
		constraint, granted := Resolve(action, domain.RoleAdmin)
		require.True(t, granted, "action %s", action)
		assert.Equal(t, Constraint{}, constraint, "action %s", action)
	}
}

func TestRequiredRoles(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleCustomer}, RequiredRoles(ActionIssueCreate))
	assert.Equal(t, []domain.Role{domain.RoleEngineer, domain.RoleAdmin}, RequiredRoles(ActionIssueAssign))
	assert.Nil(t, RequiredRoles(Action("issue.archive")))
}
