package domain

import "time"

// IssuedToken describes a session token handed back at login. Tokens are
// derived, never persisted: once issued they stay valid until expiry
// regardless of later role or permission edits.
type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// BearerTokenType is the only token type this service issues.
const BearerTokenType = "Bearer"
