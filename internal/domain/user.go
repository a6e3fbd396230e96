package domain

import "time"

// DeactivationHorizon is how far in the future the lockout timestamp is
// pushed when an administrator deactivates an account. An effectively
// permanent lockout is what distinguishes deactivation from the transient
// lockouts produced by failed-login throttling.
const DeactivationHorizon = 100 * 365 * 24 * time.Hour

// User is an administrable account. The password hash is owned by the
// identity store and never leaves this layer.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	LockoutUntil *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Inactive reports whether the account is locked out at the given instant,
// covering both administrative deactivation and transient lockouts.
func (u *User) Inactive(now time.Time) bool {
	return u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

// UserWithRoles pairs a user with its current role memberships.
type UserWithRoles struct {
	User  User
	Roles []string
}
