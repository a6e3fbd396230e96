package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/permission"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// AuthService coordinates the login flow: credential check, lockout check,
// fresh permission resolution and token issuance.
type AuthService struct {
	users    repository.UserRepository
	resolver *permission.Resolver
	tokens   *auth.TokenManager
	throttle *LoginThrottle
	now      func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, resolver *permission.Resolver, tokens *auth.TokenManager, throttle *LoginThrottle) *AuthService {
	return &AuthService{
		users:    users,
		resolver: resolver,
		tokens:   tokens,
		throttle: throttle,
		now:      time.Now,
	}
}

// Login authenticates by email or username and returns a signed session
// token carrying the subject's roles and resolved permissions.
//
// Permissions are resolved from current role claims on every login, never
// cached, so administrative edits apply to the next login while tokens
// already in flight stay valid until expiry.
func (s *AuthService) Login(ctx context.Context, key, password string) (domain.IssuedToken, error) {
	if s.throttle.Locked(ctx, key) {
		return domain.IssuedToken{}, apperrors.NewForbidden("too many failed attempts, try again later")
	}

	user, err := s.users.GetByEmailOrUserName(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.IssuedToken{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return domain.IssuedToken{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.throttle.RecordFailure(ctx, key)
		return domain.IssuedToken{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	// Credentials are verified before the lockout check so a deactivated
	// account with correct credentials answers 403, not 401.
	if user.Inactive(s.now()) {
		return domain.IssuedToken{}, apperrors.NewForbidden("account inactive")
	}

	s.throttle.Reset(ctx, key)

	roles, err := s.users.RolesForUser(ctx, user.ID)
	if err != nil {
		return domain.IssuedToken{}, err
	}

	perms, err := s.resolver.Resolve(ctx, roles)
	if err != nil {
		return domain.IssuedToken{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.UserName, roles, perms)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return token, nil
}
