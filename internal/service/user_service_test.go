package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/events"
)

func newUserService(users *fakeUserRepo, roles *fakeRoleRepo) *UserService {
	return NewUserService(users, roles, events.NewInMemoryDispatcher(), 4)
}

func TestUserCreateAssignsExistingRolesOnly(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.addRole("Editor")
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	created, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", []string{"Editor", "Ghost"})
	require.NoError(t, err)

	// Unknown role names are skipped, not rejected.
	assert.Equal(t, []string{"Editor"}, created.Roles)
	assert.NotEmpty(t, created.User.ID)
}

func TestUserCreateValidation(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	_, err := svc.Create(context.Background(), "", "a@example.com", "s3cret", nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Create(context.Background(), "alice", "a@example.com", "", nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUserCreateDuplicate(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	_, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "alice", "other@example.com", "s3cret", nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Create(context.Background(), "bob", "alice@example.com", "s3cret", nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUserUpdateReconcilesRoles(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.addRole("Editor")
	roles.addRole("Viewer")
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	created, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", []string{"Editor"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), created.User.ID, "alice2", "", []string{"Viewer"}))

	names, err := users.RolesForUser(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Viewer"}, names)

	updated, err := users.GetByID(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.UserName)
	assert.Equal(t, "alice@example.com", updated.Email, "blank email leaves the stored one")
}

func TestUserUpdateUnknownRoleRejected(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	created, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	err = svc.Update(context.Background(), created.User.ID, "", "", []string{"Ghost"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUserUpdateMissing(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := newUserService(newFakeUserRepo(roles), roles)

	err := svc.Update(context.Background(), "missing", "x", "", nil)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUserSetStatus(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	created, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", nil)
	require.NoError(t, err)

	active, err := svc.SetStatus(context.Background(), created.User.ID, false)
	require.NoError(t, err)
	assert.False(t, active)

	// Deactivation pushes the lockout effectively permanently out.
	locked, err := users.GetByID(context.Background(), created.User.ID)
	require.NoError(t, err)
	require.NotNil(t, locked.LockoutUntil)
	assert.True(t, locked.LockoutUntil.After(time.Now().Add(50*365*24*time.Hour)))
	assert.True(t, locked.Inactive(time.Now()))

	active, err = svc.SetStatus(context.Background(), created.User.ID, true)
	require.NoError(t, err)
	assert.True(t, active)

	restored, err := users.GetByID(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.LockoutUntil)
}

func TestUserListFiltersInactive(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := newUserService(users, roles)

	alice, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret", nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "bob", "bob@example.com", "s3cret", nil)
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), alice.User.ID, false)
	require.NoError(t, err)

	activeOnly, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 1)
	assert.Equal(t, "bob", activeOnly[0].User.UserName)

	everyone, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, everyone, 2)
}
