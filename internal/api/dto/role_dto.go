package dto

// RoleResponse is a role row in the admin console listing.
type RoleResponse struct {
	ID         string `json:"id"`
	RoleName   string `json:"roleName"`
	UsersCount int    `json:"usersCount"`
}

// RoleCreateRequest payload for POST /roles/create.
type RoleCreateRequest struct {
	RoleName string `json:"roleName" validate:"required"`
}

// RoleRenameRequest payload for PUT /roles/{id}.
type RoleRenameRequest struct {
	RoleName string `json:"roleName" validate:"required"`
}

// PermissionsUpdateRequest payload for PUT /roles/{roleName}/permissions,
// carrying the full desired permission set.
type PermissionsUpdateRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}
