package client

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/authz"
)

// decodeClaims extracts the claim set from a token without verifying its
// signature, the way a browser client decodes its own JWT. The server never
// trusts this path; it re-verifies every request.
func decodeClaims(token string) (authz.ClaimSet, bool) {
	var claims auth.Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return authz.ClaimSet{}, false
	}
	return claims.ClaimSet(), true
}

// Claims returns the claim set from the stored token, if one is present and
// decodable.
func (c *Client) Claims() (authz.ClaimSet, bool) {
	token, _, ok := c.store.Get()
	if !ok {
		return authz.ClaimSet{}, false
	}
	return decodeClaims(token)
}

// IsLoggedIn reports whether a stored token exists and is unexpired. The
// token's own exp claim is authoritative; the expiry recorded at login is
// the fallback when the token cannot be decoded.
func (c *Client) IsLoggedIn() bool {
	token, storedExpiry, ok := c.store.Get()
	if !ok {
		return false
	}
	now := c.now()

	if claims, decoded := decodeClaims(token); decoded && !claims.ExpiresAt.IsZero() {
		return !claims.Expired(now)
	}
	if !storedExpiry.IsZero() && !now.Before(storedExpiry) {
		return false
	}
	return true
}

// HasRole reports whether the stored token carries the exact role.
func (c *Client) HasRole(role string) bool {
	claims, ok := c.Claims()
	return ok && claims.HasRole(role)
}

// HasPermission reports whether the stored token carries the permission.
func (c *Client) HasPermission(perm string) bool {
	claims, ok := c.Claims()
	return ok && claims.HasPermission(perm)
}

// HasAllPermissions reports whether every permission is carried.
func (c *Client) HasAllPermissions(perms ...string) bool {
	claims, ok := c.Claims()
	return ok && claims.HasAll(perms...)
}

// HasAnyPermission reports whether at least one permission is carried.
func (c *Client) HasAnyPermission(perms ...string) bool {
	claims, ok := c.Claims()
	return ok && claims.HasAny(perms...)
}

// UserName returns the display name claim, when present.
func (c *Client) UserName() (string, bool) {
	claims, ok := c.Claims()
	if !ok || claims.DisplayName == "" {
		return "", false
	}
	return claims.DisplayName, true
}

// expiresAtOrZero parses the wire expiry format, tolerating absence.
func expiresAtOrZero(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
