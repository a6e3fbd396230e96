package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/domain"
)

// In-memory identity store fakes shared by the service tests.

type fakeUserRepo struct {
	users       map[string]*domain.User // keyed by id
	memberships map[string][]string     // user id -> role ids
	roles       *fakeRoleRepo
	nextID      int
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[string]*domain.User),
		memberships: make(map[string][]string),
		roles:       roles,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.nextID++
	user.ID = fmt.Sprintf("u%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmailOrUserName(ctx context.Context, key string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, key) || strings.EqualFold(u.UserName, key) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) SetLockout(ctx context.Context, id string, until *time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.LockoutUntil = until
	return nil
}

func (f *fakeUserRepo) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	var names []string
	for _, roleID := range f.memberships[userID] {
		if f.roles != nil {
			if r, ok := f.roles.roles[roleID]; ok {
				names = append(names, r.Name)
				continue
			}
		}
		names = append(names, roleID)
	}
	return names, nil
}

func (f *fakeUserRepo) AddToRole(ctx context.Context, userID, roleID string) error {
	for _, existing := range f.memberships[userID] {
		if existing == roleID {
			return nil
		}
	}
	f.memberships[userID] = append(f.memberships[userID], roleID)
	return nil
}

func (f *fakeUserRepo) RemoveFromRole(ctx context.Context, userID, roleID string) error {
	kept := f.memberships[userID][:0]
	for _, existing := range f.memberships[userID] {
		if existing != roleID {
			kept = append(kept, existing)
		}
	}
	f.memberships[userID] = kept
	return nil
}

type fakeRoleRepo struct {
	roles   map[string]*domain.Role // keyed by id
	claims  map[string][]domain.Claim
	members map[string]int // role id -> user count
	nextID  int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:   make(map[string]*domain.Role),
		claims:  make(map[string][]domain.Claim),
		members: make(map[string]int),
	}
}

func (f *fakeRoleRepo) addRole(name string, perms ...string) *domain.Role {
	f.nextID++
	role := &domain.Role{ID: fmt.Sprintf("r%d", f.nextID), Name: name}
	f.roles[role.ID] = role
	for _, p := range perms {
		f.claims[role.ID] = append(f.claims[role.ID], domain.PermissionClaim(p))
	}
	return role
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	created := f.addRole(role.Name)
	role.ID = created.ID
	return nil
}

func (f *fakeRoleRepo) Rename(ctx context.Context, id, newName string) error {
	role, ok := f.roles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	role.Name = newName
	return nil
}

func (f *fakeRoleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.roles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.roles, id)
	delete(f.claims, id)
	return nil
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	for _, r := range f.roles {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]domain.RoleSummary, error) {
	var out []domain.RoleSummary
	for _, r := range f.roles {
		out = append(out, domain.RoleSummary{ID: r.ID, Name: r.Name, UsersCount: f.members[r.ID]})
	}
	return out, nil
}

func (f *fakeRoleRepo) UsersInRole(ctx context.Context, roleID string) (int, error) {
	return f.members[roleID], nil
}

func (f *fakeRoleRepo) ListClaims(ctx context.Context, roleID string, kind domain.ClaimKind) ([]domain.Claim, error) {
	var out []domain.Claim
	for _, c := range f.claims[roleID] {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) AddClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	f.claims[roleID] = append(f.claims[roleID], claim)
	return nil
}

func (f *fakeRoleRepo) RemoveClaim(ctx context.Context, roleID string, claim domain.Claim) error {
	kept := f.claims[roleID][:0]
	for _, c := range f.claims[roleID] {
		if c.Kind == claim.Kind && strings.EqualFold(c.Value, claim.Value) {
			continue
		}
		kept = append(kept, c)
	}
	f.claims[roleID] = kept
	return nil
}

func (f *fakeRoleRepo) AllClaimValues(ctx context.Context, kind domain.ClaimKind) ([]string, error) {
	var out []string
	for _, claims := range f.claims {
		for _, c := range claims {
			if c.Kind == kind {
				out = append(out, c.Value)
			}
		}
	}
	return out, nil
}
