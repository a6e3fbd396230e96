package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users?includeInactive=bool.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("includeInactive", false)

	users, err := h.users.List(c.Context(), includeInactive)
	if err != nil {
		return err
	}

	now := time.Now()
	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		roles := u.Roles
		if roles == nil {
			roles = []string{}
		}
		result = append(result, dto.UserResponse{
			UserID:     u.User.ID,
			Email:      u.User.Email,
			UserName:   u.User.UserName,
			IsInactive: u.User.Inactive(now),
			Roles:      roles,
		})
	}
	return c.JSON(result)
}

// Create handles POST /users/create.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("user name and password are required", nil)
	}

	created, err := h.users.Create(c.Context(), req.UserName, req.Email, req.Password, req.Roles)
	if err != nil {
		return err
	}

	roles := created.Roles
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(dto.UserCreateResponse{
		Message:       fmt.Sprintf("user %q created", created.User.UserName),
		ID:            created.User.ID,
		UserName:      created.User.UserName,
		AssignedRoles: roles,
	})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("invalid fields", nil)
	}

	if err := h.users.Update(c.Context(), c.Params("id"), req.UserName, req.Email, req.Roles); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetStatus handles POST /users/:id/status.
func (h *UsersHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	active, err := h.users.SetStatus(c.Context(), c.Params("id"), req.Active)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserStatusResponse{Active: active})
}
