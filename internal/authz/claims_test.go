package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func claimsWith(perms ...string) ClaimSet {
	return ClaimSet{
		Subject:     "u-1",
		Roles:       []string{"Admin", "Editor"},
		Permissions: perms,
	}
}

func TestHasPermission(t *testing.T) {
	claims := claimsWith("docs:read", "docs:write")

	assert.True(t, claims.HasPermission("docs:read"))
	assert.True(t, claims.HasPermission("docs:write"))
	assert.False(t, claims.HasPermission("docs:delete"))
	assert.False(t, claims.HasPermission(""))
}

func TestHasPermissionIsCaseSensitive(t *testing.T) {
	// The store and resolver compare case-insensitively; the runtime
	// evaluator does not. That asymmetry is inherited behavior and must
	// not be silently fixed.
	claims := claimsWith("docs:read")

	assert.True(t, claims.HasPermission("docs:read"))
	assert.False(t, claims.HasPermission("Docs:Read"))
	assert.False(t, claims.HasPermission("DOCS:READ"))
}

func TestHasAll(t *testing.T) {
	claims := claimsWith("docs:read", "docs:write")

	assert.True(t, claims.HasAll())
	assert.True(t, claims.HasAll("docs:read"))
	assert.True(t, claims.HasAll("docs:read", "docs:write"))
	assert.False(t, claims.HasAll("docs:read", "docs:delete"))
}

func TestHasAny(t *testing.T) {
	claims := claimsWith("docs:read")

	assert.True(t, claims.HasAny("docs:read", "docs:delete"))
	assert.False(t, claims.HasAny("docs:delete", "docs:admin"))
	assert.False(t, claims.HasAny(), "empty requirement is never satisfied")
}

func TestHasRole(t *testing.T) {
	claims := claimsWith()

	assert.True(t, claims.HasRole("Admin"))
	assert.False(t, claims.HasRole("admin"), "role match is exact")
	assert.False(t, claims.HasRole("Viewer"))
}

func TestExpired(t *testing.T) {
	now := time.Now()
	claims := ClaimSet{ExpiresAt: now}

	assert.False(t, claims.Expired(now.Add(-time.Second)))
	assert.True(t, claims.Expired(now), "expiry is exact, no skew")
	assert.True(t, claims.Expired(now.Add(time.Second)))
	assert.False(t, ClaimSet{}.Expired(now), "zero expiry never expires here")
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]string{"docs:read", "DOCS:READ", " docs:write ", "", "docs:read"})
	assert.Equal(t, []string{"docs:read", "docs:write"}, got)

	assert.Empty(t, NormalizeSet(nil))
}

func TestPolicyAllows(t *testing.T) {
	claims := claimsWith("admin:access", "users:read")

	assert.True(t, Policy{}.Allows(claims), "empty policy allows everyone")
	assert.True(t, PolicyAdminAccess.Allows(claims))
	assert.False(t, PolicyUsersWrite.Allows(claims))

	anyOf := Policy{Required: []string{"users:write", "users:read"}, AnyOf: true}
	assert.True(t, anyOf.Allows(claims))

	allOf := Policy{Required: []string{"users:write", "users:read"}}
	assert.False(t, allOf.Allows(claims))
}
