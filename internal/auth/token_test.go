package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Issuer:     "admin-console",
		Audience:   "admin-console-clients",
		TTLMinutes: 60,
	}
}

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	return NewTokenManager(testJWTConfig())
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tm := newTestManager(t)

	roles := []string{"Admin", "Editor"}
	perms := []string{"admin:access", "docs:read", "docs:write"}

	issued, err := tm.Issue("user-1", "alice", roles, perms)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := tm.Verify(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.DisplayName)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, perms, claims.Permissions)

	assert.True(t, claims.HasAll(perms...))
	assert.True(t, claims.HasAny("docs:read"))
	assert.False(t, claims.HasPermission("docs:delete"))
}

func TestTokenIDUniquePerIssuance(t *testing.T) {
	tm := newTestManager(t)

	first, err := tm.Issue("user-1", "alice", nil, nil)
	require.NoError(t, err)
	second, err := tm.Issue("user-1", "alice", nil, nil)
	require.NoError(t, err)

	c1, err := tm.Verify(first.AccessToken)
	require.NoError(t, err)
	c2, err := tm.Verify(second.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenID, c2.TokenID)
}

func TestVerifyRejectsDifferentKey(t *testing.T) {
	tm := newTestManager(t)
	issued, err := tm.Issue("user-1", "alice", nil, nil)
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "ffffffffffffffffffffffffffffffff"
	verifier := NewTokenManager(other)

	_, err = verifier.Verify(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuerAndAudience(t *testing.T) {
	tm := newTestManager(t)
	issued, err := tm.Issue("user-1", "alice", nil, nil)
	require.NoError(t, err)

	wrongIssuer := testJWTConfig()
	wrongIssuer.Issuer = "someone-else"
	_, err = NewTokenManager(wrongIssuer).Verify(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongAudience := testJWTConfig()
	wrongAudience.Audience = "other-clients"
	_, err = NewTokenManager(wrongAudience).Verify(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	tm := newTestManager(t)
	issued, err := tm.Issue("user-1", "alice", nil, nil)
	require.NoError(t, err)

	// One second before expiry the token is accepted.
	tm.now = func() time.Time { return issued.ExpiresAt.Add(-time.Second) }
	_, err = tm.Verify(issued.AccessToken)
	assert.NoError(t, err)

	// One second after expiry it is rejected. No clock-skew tolerance.
	tm.now = func() time.Time { return issued.ExpiresAt.Add(time.Second) }
	_, err = tm.Verify(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	tm := newTestManager(t)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
