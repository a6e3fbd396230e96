package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/authz"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/permission"
	"github.com/spec-kit/admin-console/internal/repository"
)

// DemoAdminRole is the role granted to the seeded demo account.
const DemoAdminRole = "Admin"

// SeedDemoAdmin creates an ephemeral admin account and an Admin role
// carrying admin:access, for demo deployments only. Existing users and
// roles are left alone.
func SeedDemoAdmin(ctx context.Context, cfg config.DemoConfig, bcryptCost int, users repository.UserRepository, roles repository.RoleRepository, store *permission.Store, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("DEMO_ADMIN_PASSWORD is required when demo mode is enabled")
	}

	role, err := roles.GetByName(ctx, DemoAdminRole)
	if errors.Is(err, pgx.ErrNoRows) {
		role = &domain.Role{Name: DemoAdminRole}
		if err := roles.Create(ctx, role); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	perms, err := store.ListPermissions(ctx, role.Name)
	if err != nil {
		return err
	}
	if !containsFold(perms, authz.PermAdminAccess) {
		if err := store.SetPermissions(ctx, role.Name, append(perms, authz.PermAdminAccess)); err != nil {
			return err
		}
	}

	if _, err := users.GetByEmailOrUserName(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		UserName:     cfg.AdminEmail,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	if err := users.AddToRole(ctx, admin.ID, role.ID); err != nil {
		return err
	}

	logger.Info("seeded demo admin", zap.String("email", cfg.AdminEmail))
	return nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
