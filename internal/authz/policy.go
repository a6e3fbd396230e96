package authz

// Well-known permission strings. Permissions follow the resource:action
// convention but the colon is never interpreted by the service.
const (
	PermAdminAccess = "admin:access"
	PermUsersRead   = "users:read"
	PermUsersWrite  = "users:write"
)

// Policy names a required-permission predicate for one route or operation.
// Routes declare a Policy instead of carrying ad-hoc permission checks, so
// the whole authorization surface is visible in one table.
type Policy struct {
	Name     string
	Required []string
	// AnyOf switches the predicate from has-all to has-at-least-one.
	AnyOf bool
}

// Allows evaluates the policy against a verified claim set.
func (p Policy) Allows(claims ClaimSet) bool {
	if len(p.Required) == 0 {
		return true
	}
	if p.AnyOf {
		return claims.HasAny(p.Required...)
	}
	return claims.HasAll(p.Required...)
}

// Predefined policies shared by the server routes and the client guard.
var (
	PolicyAdminAccess = Policy{Name: "AdminAccess", Required: []string{PermAdminAccess}}
	PolicyUsersRead   = Policy{Name: "UsersRead", Required: []string{PermUsersRead}}
	PolicyUsersWrite  = Policy{Name: "UsersWrite", Required: []string{PermUsersWrite}}
)
