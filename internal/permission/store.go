// Package permission implements the role permission claim store and the
// login-time permission resolver. All comparisons in this package are
// case-insensitive set operations; the runtime evaluator in internal/authz
// deliberately is not.
package permission

import (
	"context"
	"strings"

	"github.com/spec-kit/admin-console/internal/authz"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
)

// Store manages the permission claims attached to roles.
type Store struct {
	roles repository.RoleRepository
}

// NewStore builds a claim store over the role repository.
func NewStore(roles repository.RoleRepository) *Store {
	return &Store{roles: roles}
}

// ListPermissions returns the deduplicated permission claim values for the
// role. The caller is responsible for checking role existence first; this
// surfaces the repository's not-found error unchanged.
func (s *Store) ListPermissions(ctx context.Context, roleName string) ([]string, error) {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	claims, err := s.roles.ListClaims(ctx, role.ID, domain.ClaimPermission)
	if err != nil {
		return nil, err
	}
	return authz.NormalizeSet(claimValues(claims)), nil
}

// SetPermissions replaces the role's permission set with desired, applying
// additions before removals. Idempotent: a repeated call with the same
// desired set performs no writes. Individual claim writes are independent;
// on failure the error is surfaced and already-applied changes stay in
// place. Best-effort, not transactional.
func (s *Store) SetPermissions(ctx context.Context, roleName string, desired []string) error {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return err
	}

	current, err := s.roles.ListClaims(ctx, role.ID, domain.ClaimPermission)
	if err != nil {
		return err
	}

	desiredSet := lowerSet(authz.NormalizeSet(desired))
	currentSet := lowerSet(claimValues(current))

	for key, value := range desiredSet {
		if _, ok := currentSet[key]; ok {
			continue
		}
		if err := s.roles.AddClaim(ctx, role.ID, domain.PermissionClaim(value)); err != nil {
			return err
		}
	}

	for key, value := range currentSet {
		if _, ok := desiredSet[key]; ok {
			continue
		}
		if err := s.roles.RemoveClaim(ctx, role.ID, domain.PermissionClaim(value)); err != nil {
			return err
		}
	}
	return nil
}

// ListAllPermissions returns the case-insensitive union of every permission
// claim across every role. Used to populate selection UIs, never for
// authorization decisions.
func (s *Store) ListAllPermissions(ctx context.Context) ([]string, error) {
	values, err := s.roles.AllClaimValues(ctx, domain.ClaimPermission)
	if err != nil {
		return nil, err
	}
	return authz.NormalizeSet(values), nil
}

func claimValues(claims []domain.Claim) []string {
	values := make([]string, 0, len(claims))
	for _, c := range claims {
		values = append(values, c.Value)
	}
	return values
}

// lowerSet indexes values by their lowercase form, keeping the first
// original casing seen.
func lowerSet(values []string) map[string]string {
	set := make(map[string]string, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := set[key]; !ok {
			set[key] = v
		}
	}
	return set
}
