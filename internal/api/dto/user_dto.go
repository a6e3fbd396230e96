package dto

// UserResponse is a user row with role memberships.
type UserResponse struct {
	UserID     string   `json:"userId"`
	Email      string   `json:"email"`
	UserName   string   `json:"userName"`
	IsInactive bool     `json:"isInactive"`
	Roles      []string `json:"roles"`
}

// UserCreateRequest payload for POST /users/create.
type UserCreateRequest struct {
	UserName string   `json:"userName" validate:"required"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"`
}

// UserCreateResponse summarizes a created account.
type UserCreateResponse struct {
	Message       string   `json:"message"`
	ID            string   `json:"id"`
	UserName      string   `json:"userName"`
	AssignedRoles []string `json:"assignedRoles"`
}

// UserUpdateRequest payload for PUT /users/{id}.
type UserUpdateRequest struct {
	UserName string   `json:"userName"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Roles    []string `json:"roles"`
}

// UserStatusRequest payload for POST /users/{id}/status.
type UserStatusRequest struct {
	Active bool `json:"active"`
}

// UserStatusResponse echoes the resulting state.
type UserStatusResponse struct {
	Active bool `json:"active"`
}
