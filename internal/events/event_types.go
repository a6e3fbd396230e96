package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated            EventType = "user_created"
	EventUserUpdated            EventType = "user_updated"
	EventUserStatusChanged      EventType = "user_status_changed"
	EventRoleDeleted            EventType = "role_deleted"
	EventRolePermissionsChanged EventType = "role_permissions_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserName string   `json:"user_name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	Active bool `json:"active"`
}

// RoleDeletedPayload payload.
type RoleDeletedPayload struct {
	RoleName string `json:"role_name"`
}

// RolePermissionsChangedPayload payload.
type RolePermissionsChangedPayload struct {
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
}
