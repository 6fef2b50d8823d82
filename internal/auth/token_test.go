package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)
	user := &domain.User{ID: 42, Email: "engineer@test.com", Role: domain.RoleEngineer}

	token, exp, err := tm.GenerateToken(user, "session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "engineer@test.com", claims.Email)
	assert.Equal(t, domain.RoleEngineer, claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)
	user := &domain.User{ID: 1, Email: "user@test.com", Role: domain.RoleCustomer}

	token, _, err := issuer.GenerateToken(user, "sid")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	tm.ttl = -time.Minute
	user := &domain.User{ID: 1, Email: "user@test.com", Role: domain.RoleCustomer}

	token, _, err := tm.GenerateToken(user, "sid")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
