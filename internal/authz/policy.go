package authz

import "github.com/spec-kit/issue-tracker/internal/domain"

// Action names an operation on an issue or its surroundings.
type Action string

const (
	ActionIssueCreate       Action = "issue.create"
	ActionIssueView         Action = "issue.view"
	ActionIssueEdit         Action = "issue.edit"
	ActionIssueAssign       Action = "issue.assign"
	ActionIssueUpdateStatus Action = "issue.update_status"
	ActionIssueClose        Action = "issue.close"
	ActionCommentAdd        Action = "comment.add"
	ActionUserManage        Action = "user.manage"
	ActionReportView        Action = "report.view"
	ActionReportAdmin       Action = "report.admin"
	ActionReportExport      Action = "report.export"
)

// Constraint narrows an action for a role beyond the role check itself.
type Constraint struct {
	// OwnerOnly limits the action to issues the actor created. Issues
	// outside that scope read as NotFound, never Forbidden.
	OwnerOnly bool
	// OpenOnly limits the action to issues still in the Open status.
	OpenOnly bool
}

// policy is the single role x operation table. Handlers and services resolve
// against it instead of carrying their own per-path role checks.
var policy = map[Action]map[domain.Role]Constraint{
	ActionIssueCreate: {
		domain.RoleCustomer: {},
	},
	ActionIssueView: {
		domain.RoleCustomer: {OwnerOnly: true},
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionIssueEdit: {
		domain.RoleCustomer: {OwnerOnly: true, OpenOnly: true},
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionIssueAssign: {
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionIssueUpdateStatus: {
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionIssueClose: {
		domain.RoleCustomer: {OwnerOnly: true},
	},
	ActionCommentAdd: {
		domain.RoleCustomer: {OwnerOnly: true},
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionUserManage: {
		domain.RoleAdmin: {},
	},
	ActionReportView: {
		domain.RoleEngineer: {},
		domain.RoleAdmin:    {},
	},
	ActionReportAdmin: {
		domain.RoleAdmin: {},
	},
	ActionReportExport: {
		domain.RoleAdmin: {},
	},
}

// Resolve returns the constraint governing the role for the action. The
// second result is false when the role may not perform the action at all.
// Admin falls through to an unconstrained grant for any known action.
func Resolve(action Action, role domain.Role) (Constraint, bool) {
	rules, ok := policy[action]
	if !ok {
		return Constraint{}, false
	}
	if c, ok := rules[role]; ok {
		return c, true
	}
	if role == domain.RoleAdmin {
		return Constraint{}, true
	}
	return Constraint{}, false
}

// RequiredRoles lists the roles the policy table names for an action.
// Used to build route guards from the same table the services consult.
func RequiredRoles(action Action) []domain.Role {
	rules, ok := policy[action]
	if !ok {
		return nil
	}
	roles := make([]domain.Role, 0, len(rules))
	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleEngineer, domain.RoleAdmin} {
		if _, ok := rules[role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}
