package domain

import "time"

// Role is a named bundle of permission claims assignable to users.
// Names are unique case-insensitively.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleSummary is a role row decorated with its member count, as listed in
// the admin console.
type RoleSummary struct {
	ID         string
	Name       string
	UsersCount int
}
