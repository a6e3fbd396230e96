package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// UserService manages accounts and their role memberships.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	dispatcher events.Dispatcher
	bcryptCost int
	now        func() time.Time
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		roles:      roles,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// List returns users with their role memberships. Inactive accounts are
// filtered out unless includeInactive is set.
func (s *UserService) List(ctx context.Context, includeInactive bool) ([]domain.UserWithRoles, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]domain.UserWithRoles, 0, len(users))
	for _, user := range users {
		if !includeInactive && user.Inactive(now) {
			continue
		}
		roles, err := s.users.RolesForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.UserWithRoles{User: user, Roles: roles})
	}
	return result, nil
}

// Create adds an account and assigns the requested roles. Role names that
// do not exist are skipped rather than rejected, mirroring how stale role
// references are tolerated elsewhere.
func (s *UserService) Create(ctx context.Context, userName, email, password string, roleNames []string) (*domain.UserWithRoles, error) {
	if strings.TrimSpace(userName) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("user name and password are required", nil)
	}

	for _, key := range []string{userName, email} {
		if strings.TrimSpace(key) == "" {
			continue
		}
		if _, err := s.users.GetByEmailOrUserName(ctx, key); err == nil {
			return nil, apperrors.NewValidationError("user already exists", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	var assigned []string
	for _, name := range roleNames {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		if err := s.users.AddToRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
		assigned = append(assigned, role.Name)
	}

	s.publish(ctx, events.EventUserCreated, user.ID, events.UserCreatedPayload{
		UserName: user.UserName,
		Email:    user.Email,
		Roles:    assigned,
	})

	return &domain.UserWithRoles{User: *user, Roles: assigned}, nil
}

// Update edits the account's identifying fields and reconciles its role
// memberships against the requested set.
func (s *UserService) Update(ctx context.Context, id, userName, email string, roleNames []string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if strings.TrimSpace(userName) != "" {
		user.UserName = userName
	}
	if strings.TrimSpace(email) != "" {
		user.Email = email
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	current, err := s.users.RolesForUser(ctx, user.ID)
	if err != nil {
		return err
	}

	toAdd, toRemove := diffRoles(current, roleNames)

	for _, name := range toAdd {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError(
					fmt.Sprintf("role %q does not exist", name), nil)
			}
			return err
		}
		if err := s.users.AddToRole(ctx, user.ID, role.ID); err != nil {
			return err
		}
	}

	for _, name := range toRemove {
		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return err
		}
		if err := s.users.RemoveFromRole(ctx, user.ID, role.ID); err != nil {
			return err
		}
	}

	s.publish(ctx, events.EventUserUpdated, user.ID, nil)
	return nil
}

// SetStatus activates or deactivates an account. Deactivation pushes the
// lockout timestamp effectively permanently into the future, which is what
// distinguishes it from the transient lockouts login throttling produces.
// Returns the resulting active state.
func (s *UserService) SetStatus(ctx context.Context, id string, active bool) (bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewNotFound("user", nil)
		}
		return false, err
	}

	var until *time.Time
	if !active {
		t := s.now().Add(domain.DeactivationHorizon)
		until = &t
	}
	if err := s.users.SetLockout(ctx, user.ID, until); err != nil {
		return false, err
	}

	s.publish(ctx, events.EventUserStatusChanged, user.ID,
		events.UserStatusChangedPayload{Active: active})
	return until == nil, nil
}

// diffRoles computes memberships to add and remove, comparing
// case-insensitively.
func diffRoles(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]string, len(current))
	for _, name := range current {
		currentSet[strings.ToLower(name)] = name
	}
	desiredSet := make(map[string]string, len(desired))
	for _, name := range desired {
		if strings.TrimSpace(name) == "" {
			continue
		}
		desiredSet[strings.ToLower(name)] = name
	}

	for key, name := range desiredSet {
		if _, ok := currentSet[key]; !ok {
			toAdd = append(toAdd, name)
		}
	}
	for key, name := range currentSet {
		if _, ok := desiredSet[key]; !ok {
			toRemove = append(toRemove, name)
		}
	}
	return toAdd, toRemove
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
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
