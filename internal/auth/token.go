package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/admin-console/internal/authz"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
)

// ErrInvalidToken is returned for any verification failure: bad signature,
// wrong issuer or audience, expired or malformed token. Callers get no
// partial trust and no detail beyond "unauthenticated".
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenManager builds a manager from validated JWT configuration.
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL(),
		now:      time.Now,
	}
}

// Claims is the JWT payload. Role and permission claims travel as plain
// string arrays; the typed domain.ClaimKind view exists only in process.
type Claims struct {
	DisplayName string   `json:"name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"perm"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject carrying its roles and
// resolved permissions. The jti claim is fresh per issuance; everything
// else is deterministic for the same inputs and instant.
func (tm *TokenManager) Issue(subjectID, displayName string, roles, permissions []string) (domain.IssuedToken, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)

	claims := &Claims{
		DisplayName: displayName,
		Roles:       roles,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			Subject:   subjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return domain.IssuedToken{
		AccessToken: signed,
		TokenType:   domain.BearerTokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify validates signature, issuer, audience and expiry, and returns the
// embedded claim set. Expiry is exact: jwt/v5 applies no leeway unless asked
// for, and none is asked for here.
func (tm *TokenManager) Verify(tokenStr string) (authz.ClaimSet, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	},
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return authz.ClaimSet{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return authz.ClaimSet{}, ErrInvalidToken
	}
	return claims.ClaimSet(), nil
}

// ClaimSet converts the wire payload into the read-only view the
// authorization evaluator consumes.
func (c *Claims) ClaimSet() authz.ClaimSet {
	cs := authz.ClaimSet{
		Subject:     c.Subject,
		DisplayName: c.DisplayName,
		TokenID:     c.ID,
		Roles:       c.Roles,
		Permissions: c.Permissions,
	}
	if c.IssuedAt != nil {
		cs.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		cs.ExpiresAt = c.ExpiresAt.Time
	}
	return cs
}
