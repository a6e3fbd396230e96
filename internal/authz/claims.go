// Package authz holds the pure authorization predicates evaluated on both
// sides of the wire: the server request gate and the client navigation
// guard. Keeping the logic in one dependency-free package is what guarantees
// the two gates agree.
package authz

import (
	"strings"
	"time"
)

// ClaimSet is a verified, read-only view of a session token's claims.
type ClaimSet struct {
	Subject     string
	DisplayName string
	TokenID     string
	Roles       []string
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// HasPermission reports whether perm is present in the permission claims.
// The comparison is case-sensitive: at this layer permission strings are
// opaque tokens, unlike the store and resolver which compare
// case-insensitively. The asymmetry is inherited behavior and pinned by
// tests; do not normalize here.
func (c ClaimSet) HasPermission(perm string) bool {
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAll reports whether every required permission is present.
func (c ClaimSet) HasAll(perms ...string) bool {
	for _, p := range perms {
		if !c.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one required permission is present.
// An empty requirement list is never satisfied.
func (c ClaimSet) HasAny(perms ...string) bool {
	for _, p := range perms {
		if c.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasRole reports whether the exact role name appears in the role claims.
func (c ClaimSet) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Expired reports whether the claim set is past its expiry at the given
// instant. Expiry is exact; there is no clock-skew tolerance.
func (c ClaimSet) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// NormalizeSet lowercases, trims and deduplicates a list of permission or
// role names into canonical set form, the comparison the claim store and
// resolver use. Order of first appearance is preserved.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
