package permission

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/authz"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
)

// Resolver computes a user's effective permission set from role names.
type Resolver struct {
	roles repository.RoleRepository
}

// NewResolver builds a resolver over the role repository.
func NewResolver(roles repository.RoleRepository) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns the case-insensitive union of permission claims across the
// named roles. Role names are deduplicated case-insensitively and unknown
// names are silently skipped, so stale role references degrade gracefully.
//
// The result is computed fresh from current claims on every call, never
// cached, which is why permission edits take effect on the next login
// rather than retroactively on outstanding tokens.
func (r *Resolver) Resolve(ctx context.Context, roleNames []string) ([]string, error) {
	union := make([]string, 0)
	for _, name := range authz.NormalizeSet(roleNames) {
		role, err := r.roles.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		claims, err := r.roles.ListClaims(ctx, role.ID, domain.ClaimPermission)
		if err != nil {
			return nil, err
		}
		union = append(union, claimValues(claims)...)
	}
	return authz.NormalizeSet(union), nil
}
