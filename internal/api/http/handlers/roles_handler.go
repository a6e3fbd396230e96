package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// RolesHandler exposes role and permission management endpoints.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// List handles GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	summaries, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}

	result := make([]dto.RoleResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, dto.RoleResponse{
			ID:         s.ID,
			RoleName:   s.Name,
			UsersCount: s.UsersCount,
		})
	}
	return c.JSON(result)
}

// Create handles POST /roles/create.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role, err := h.roles.Create(c.Context(), req.RoleName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RoleResponse{
		ID:         role.ID,
		RoleName:   role.Name,
		UsersCount: 0,
	})
}

// Rename handles PUT /roles/:id.
func (h *RolesHandler) Rename(c *fiber.Ctx) error {
	var req dto.RoleRenameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.roles.Rename(c.Context(), c.Params("id"), req.RoleName); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	if err := h.roles.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetPermissions handles GET /roles/:roleName/permissions.
func (h *RolesHandler) GetPermissions(c *fiber.Ctx) error {
	perms, err := h.roles.GetPermissions(c.Context(), c.Params("roleName"))
	if err != nil {
		return err
	}
	if perms == nil {
		perms = []string{}
	}
	return c.JSON(perms)
}

// SetPermissions handles PUT /roles/:roleName/permissions with full-replace
// semantics.
func (h *RolesHandler) SetPermissions(c *fiber.Ctx) error {
	var req dto.PermissionsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.roles.SetPermissions(c.Context(), c.Params("roleName"), req.Permissions); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AllPermissions handles GET /roles/permissions.
func (h *RolesHandler) AllPermissions(c *fiber.Ctx) error {
	perms, err := h.roles.AllPermissions(c.Context())
	if err != nil {
		return err
	}
	if perms == nil {
		perms = []string{}
	}
	return c.JSON(perms)
}
