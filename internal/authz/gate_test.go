package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestAuthorize(t *testing.T) {
	customer := &Identity{UserID: 1, Email: "customer@test.com", Role: domain.RoleCustomer}
	engineer := &Identity{UserID: 2, Email: "engineer@test.com", Role: domain.RoleEngineer}
	admin := &Identity{UserID: 3, Email: "admin@test.com", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		identity *Identity
		required []domain.Role
		want     Decision
	}{
		{"nil identity", nil, []domain.Role{domain.RoleCustomer}, DecisionUnauthenticated},
		{"nil identity no requirement", nil, nil, DecisionUnauthenticated},
		{"role in set", customer, []domain.Role{domain.RoleCustomer}, DecisionAllowed},
		{"role outside set", customer, []domain.Role{domain.RoleEngineer}, DecisionForbidden},
		{"engineer in mixed set", engineer, []domain.Role{domain.RoleCustomer, domain.RoleEngineer}, DecisionAllowed},
		{"engineer outside admin set", engineer, []domain.Role{domain.RoleAdmin}, DecisionForbidden},
		{"admin passes customer gate", admin, []domain.Role{domain.RoleCustomer}, DecisionAllowed},
		{"admin passes engineer gate", admin, []domain.Role{domain.RoleEngineer}, DecisionAllowed},
		{"empty requirement allows any identity", customer, nil, DecisionAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.identity, tt.required...))
		})
	}
}
