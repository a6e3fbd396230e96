package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/permission"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// RoleService manages roles and their permission claims.
type RoleService struct {
	roles      repository.RoleRepository
	store      *permission.Store
	dispatcher events.Dispatcher
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, store *permission.Store, dispatcher events.Dispatcher) *RoleService {
	return &RoleService{roles: roles, store: store, dispatcher: dispatcher}
}

// List returns all roles with their member counts.
func (s *RoleService) List(ctx context.Context) ([]domain.RoleSummary, error) {
	return s.roles.List(ctx)
}

// Create adds a new role. Blank names are a validation error; an existing
// name, compared case-insensitively, is a conflict.
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("role name is required", nil)
	}

	if _, err := s.roles.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("role already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Rename changes a role's name. Renaming a role to its own name in a
// different casing is allowed; colliding with another role is a conflict.
func (s *RoleService) Rename(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.NewValidationError("role name is required", nil)
	}

	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", nil)
		}
		return err
	}

	if !strings.EqualFold(role.Name, newName) {
		if _, err := s.roles.GetByName(ctx, newName); err == nil {
			return apperrors.NewConflict("another role already has that name", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
	}

	return s.roles.Rename(ctx, id, newName)
}

// Delete removes a role. Deletion is refused while any user still holds the
// role; the role and its claims are left untouched in that case.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", nil)
		}
		return err
	}

	count, err := s.roles.UsersInRole(ctx, role.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict(
			fmt.Sprintf("cannot delete: %d user(s) still assigned", count),
			map[string]any{"users_count": count})
	}

	if err := s.roles.Delete(ctx, role.ID); err != nil {
		return err
	}

	s.publish(ctx, events.EventRoleDeleted, role.ID, events.RoleDeletedPayload{RoleName: role.Name})
	return nil
}

// GetPermissions returns the role's permission claim values.
func (s *RoleService) GetPermissions(ctx context.Context, roleName string) ([]string, error) {
	perms, err := s.store.ListPermissions(ctx, roleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", nil)
		}
		return nil, err
	}
	return perms, nil
}

// SetPermissions replaces the role's permission set with full-replace
// semantics. Individual claim failures surface as validation errors with
// the underlying reason; applied changes are not rolled back.
func (s *RoleService) SetPermissions(ctx context.Context, roleName string, desired []string) error {
	if err := s.store.SetPermissions(ctx, roleName, desired); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", nil)
		}
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.NewValidationError("failed to update permissions",
			map[string]any{"reason": err.Error()})
	}

	s.publish(ctx, events.EventRolePermissionsChanged, roleName,
		events.RolePermissionsChangedPayload{RoleName: roleName, Permissions: desired})
	return nil
}

// AllPermissions returns the global permission union across every role.
func (s *RoleService) AllPermissions(ctx context.Context) ([]string, error) {
	return s.store.ListAllPermissions(ctx)
}

func (s *RoleService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
