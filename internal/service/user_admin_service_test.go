package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
)

type adminFixture struct {
	svc        *UserAdminService
	users      *fakeUserRepo
	dispatcher *recordingDispatcher
	admin      *domain.User
	engineer   *domain.User
	customer   *domain.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	users := newFakeUserRepo()
	admin := users.add("admin@test.com", domain.RoleAdmin)
	engineer := users.add("engineer@test.com", domain.RoleEngineer)
	customer := users.add("customer@test.com", domain.RoleCustomer)
	dispatcher := &recordingDispatcher{}
	return &adminFixture{
		svc:        NewUserAdminService(users, dispatcher),
		users:      users,
		dispatcher: dispatcher,
		admin:      admin,
		engineer:   engineer,
		customer:   customer,
	}
}

func TestListUsers(t *testing.T) {
	f := newAdminFixture(t)

	users, err := f.svc.ListUsers(context.Background(), identityOf(f.admin))
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = f.svc.ListUsers(context.Background(), identityOf(f.engineer))
	assert.Equal(t, "FORBIDDEN", code(t, err))
}

func TestListEngineers(t *testing.T) {
	f := newAdminFixture(t)

	engineers, err := f.svc.ListEngineers(context.Background())
	require.NoError(t, err)
	require.Len(t, engineers, 1)
	assert.Equal(t, "engineer@test.com", engineers[0].Email)
}

func TestChangeRole(t *testing.T) {
	f := newAdminFixture(t)

	updated, err := f.svc.ChangeRole(context.Background(), identityOf(f.admin), f.customer.ID, domain.RoleEngineer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEngineer, updated.Role)

	stored, err := f.users.GetByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEngineer, stored.Role)

	event := f.dispatcher.lastEvent()
	require.NotNil(t, event)
	assert.Equal(t, events.EventUserRoleChanged, event.Type)
}

func TestChangeRoleGuards(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	// An admin may never change their own role.
	_, err := f.svc.ChangeRole(ctx, identityOf(f.admin), f.admin.ID, domain.RoleCustomer)
	assert.Equal(t, "FORBIDDEN", code(t, err))

	_, err = f.svc.ChangeRole(ctx, identityOf(f.admin), f.customer.ID, domain.Role("OWNER"))
	assert.Equal(t, "INVALID_ROLE", code(t, err))

	_, err = f.svc.ChangeRole(ctx, identityOf(f.admin), 9999, domain.RoleEngineer)
	assert.Equal(t, "NOT_FOUND", code(t, err))

	_, err = f.svc.ChangeRole(ctx, identityOf(f.engineer), f.customer.ID, domain.RoleEngineer)
	assert.Equal(t, "FORBIDDEN", code(t, err))
}

func TestDeleteUser(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteUser(ctx, identityOf(f.admin), f.customer.ID))
	_, err := f.users.GetByID(ctx, f.customer.ID)
	assert.Equal(t, "NOT_FOUND", code(t, err))

	// An admin may never delete their own account.
	err = f.svc.DeleteUser(ctx, identityOf(f.admin), f.admin.ID)
	assert.Equal(t, "FORBIDDEN", code(t, err))

	err = f.svc.DeleteUser(ctx, identityOf(f.engineer), f.engineer.ID)
	assert.Equal(t, "FORBIDDEN", code(t, err))
}
