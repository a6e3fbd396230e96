package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/permission"
)

func newRoleService(roles *fakeRoleRepo) *RoleService {
	return NewRoleService(roles, permission.NewStore(roles), events.NewInMemoryDispatcher())
}

func TestRoleCreate(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := newRoleService(roles)

	role, err := svc.Create(context.Background(), "Editor")
	require.NoError(t, err)
	assert.Equal(t, "Editor", role.Name)
	assert.NotEmpty(t, role.ID)
}

func TestRoleCreateBlankName(t *testing.T) {
	svc := newRoleService(newFakeRoleRepo())

	_, err := svc.Create(context.Background(), "   ")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestRoleCreateDuplicateCaseInsensitive(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.addRole("Editor")
	svc := newRoleService(roles)

	_, err := svc.Create(context.Background(), "EDITOR")
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestRoleRename(t *testing.T) {
	roles := newFakeRoleRepo()
	editor := roles.addRole("Editor")
	roles.addRole("Viewer")
	svc := newRoleService(roles)

	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Rename(context.Background(), "missing", "Writer")))
	assert.Equal(t, http.StatusConflict, statusOf(t, svc.Rename(context.Background(), editor.ID, "viewer")))

	// Recasing a role's own name is not a collision.
	require.NoError(t, svc.Rename(context.Background(), editor.ID, "EDITOR"))

	require.NoError(t, svc.Rename(context.Background(), editor.ID, "Writer"))
	renamed, err := roles.GetByID(context.Background(), editor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Writer", renamed.Name)
}

func TestRoleDeleteBlockedWhileAssigned(t *testing.T) {
	roles := newFakeRoleRepo()
	editor := roles.addRole("Editor", "docs:read")
	roles.members[editor.ID] = 2
	svc := newRoleService(roles)

	err := svc.Delete(context.Background(), editor.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	// The role and its claims survive the refused delete.
	kept, getErr := roles.GetByID(context.Background(), editor.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Editor", kept.Name)
	perms, permErr := svc.GetPermissions(context.Background(), "Editor")
	require.NoError(t, permErr)
	assert.Equal(t, []string{"docs:read"}, perms)
}

func TestRoleDeleteUnassigned(t *testing.T) {
	roles := newFakeRoleRepo()
	editor := roles.addRole("Editor")
	svc := newRoleService(roles)

	require.NoError(t, svc.Delete(context.Background(), editor.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Delete(context.Background(), editor.ID)))
}

func TestRolePermissionsRoundTrip(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.addRole("Editor", "docs:read", "docs:write")
	svc := newRoleService(roles)

	require.NoError(t, svc.SetPermissions(context.Background(), "Editor", []string{"docs:read"}))

	perms, err := svc.GetPermissions(context.Background(), "Editor")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs:read"}, perms)
}

func TestRolePermissionsUnknownRole(t *testing.T) {
	svc := newRoleService(newFakeRoleRepo())

	_, err := svc.GetPermissions(context.Background(), "Ghost")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.SetPermissions(context.Background(), "Ghost", []string{"docs:read"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestRoleAllPermissions(t *testing.T) {
	roles := newFakeRoleRepo()
	roles.addRole("Editor", "docs:read", "docs:write")
	roles.addRole("Viewer", "DOCS:READ")
	svc := newRoleService(roles)

	all, err := svc.AllPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
