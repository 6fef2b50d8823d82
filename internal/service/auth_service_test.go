package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/config"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

func newAuthFixture(_ *testing.T) (*AuthService, *fakeUserRepo, *fakeSessionStore) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			SessionTTLMinutes: 30,
			BcryptCost:        4,
			CookieName:        "issue_session",
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: users, SessionStore: sessions})
	return svc, users, sessions
}

func TestRegister(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	user, token, exp, err := svc.Register(context.Background(), "new@test.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	// Registration opens a session immediately.
	assert.Len(t, sessions.sessions, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "", "secret")
	assert.Equal(t, "VALIDATION_FAILED", code(t, err))

	_, _, _, err = svc.Register(ctx, "new@test.com", "   ")
	assert.Equal(t, "VALIDATION_FAILED", code(t, err))

	_, _, _, err = svc.Register(ctx, "new@test.com", "secret")
	require.NoError(t, err)
	_, _, _, err = svc.Register(ctx, "new@test.com", "other")
	assert.Equal(t, "DUPLICATE_EMAIL", code(t, err))
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	_, _, _, err := svc.Register(ctx, "user@test.com", "secret")
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "user@test.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user@test.com", user.Email)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	_, _, _, err := svc.Register(ctx, "user@test.com", "secret")
	require.NoError(t, err)

	// Unknown account and wrong password are indistinguishable outward.
	_, _, _, err = svc.Login(ctx, "nobody@test.com", "secret")
	assert.Equal(t, "UNAUTHENTICATED", code(t, err))

	_, _, _, err = svc.Login(ctx, "user@test.com", "wrong")
	assert.Equal(t, "UNAUTHENTICATED", code(t, err))
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)
	ctx := context.Background()
	_, token, _, err := svc.Register(ctx, "user@test.com", "secret")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.SessionID))
	active, err := sessions.Exists(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.False(t, active)

	// Logout with no session is a no-op, not an error.
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestSeedTestAccounts(t *testing.T) {
	users := newFakeUserRepo()
	logger := zapNop()

	require.NoError(t, SeedTestAccounts(context.Background(), users, 4, logger))

	admin, err := users.GetByEmail(context.Background(), "admin@test.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, "admin123"))

	engineer, err := users.GetByEmail(context.Background(), "engineer@test.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEngineer, engineer.Role)
	require.NoError(t, auth.ComparePassword(engineer.PasswordHash, "engineer123"))

	customer, err := users.GetByEmail(context.Background(), "customer@test.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, customer.Role)
	require.NoError(t, auth.ComparePassword(customer.PasswordHash, "customer123"))

	// A populated table is left alone.
	require.NoError(t, SeedTestAccounts(context.Background(), users, 4, logger))
	count, err := users.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
