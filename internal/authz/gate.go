package authz

import "github.com/spec-kit/issue-tracker/internal/domain"

// Identity is the principal resolved from the session token for one request.
// The role is whatever the session carried at login time; it is not re-read
// from the store per request, so a role changed mid-session keeps its old
// privilege until the next login. That staleness window is accepted behavior.
type Identity struct {
	UserID int64
	Email  string
	Role   domain.Role
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	// DecisionAllowed grants the operation.
	DecisionAllowed Decision = iota
	// DecisionUnauthenticated means no identity was presented; the caller
	// should be sent to login.
	DecisionUnauthenticated
	// DecisionForbidden means the identity is present but its role does not
	// satisfy the requirement. Distinct from Unauthenticated on purpose.
	DecisionForbidden
)

// Authorize decides whether the identity may perform an operation restricted
// to the given roles. Admin satisfies every requirement: a deliberate
// super-role, not a hierarchy. An empty requirement admits any authenticated
// identity. Stateless; evaluated per operation, never cached.
func Authorize(identity *Identity, required ...domain.Role) Decision {
	if identity == nil {
		return DecisionUnauthenticated
	}
	if identity.Role == domain.RoleAdmin {
		return DecisionAllowed
	}
	if len(required) == 0 {
		return DecisionAllowed
	}
	for _, role := range required {
		if identity.Role == role {
			return DecisionAllowed
		}
	}
	return DecisionForbidden
}
