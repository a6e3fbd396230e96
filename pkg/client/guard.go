package client

import (
	"github.com/spec-kit/admin-console/internal/authz"
)

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin means no valid session exists.
	RedirectLogin
	// RedirectForbidden means the session lacks a required permission.
	RedirectForbidden
)

// Route declares a navigable path and the permissions it requires,
// evaluated with has-all semantics. An empty Required list only demands a
// valid session.
type Route struct {
	Path     string
	Required []string
}

// Guard gates navigation before any request is made. It evaluates the same
// predicates over the same claim set as the server's request gate, but it is
// advisory only.
type Guard struct {
	client *Client
	routes map[string]Route
}

// NewGuard builds a guard from the declarative route table.
func NewGuard(client *Client, routes []Route) *Guard {
	table := make(map[string]Route, len(routes))
	for _, r := range routes {
		table[r.Path] = r
	}
	return &Guard{client: client, routes: table}
}

// Check runs the three-state navigation decision for a path: no valid
// session redirects to login, an insufficient one to the forbidden page,
// and a sufficient one proceeds. Unknown paths only require a session.
func (g *Guard) Check(path string) Decision {
	if !g.client.IsLoggedIn() {
		return RedirectLogin
	}

	route, ok := g.routes[path]
	if !ok || len(route.Required) == 0 {
		return Allow
	}

	claims, ok := g.client.Claims()
	if !ok {
		return RedirectLogin
	}
	if !claims.HasAll(route.Required...) {
		return RedirectForbidden
	}
	return Allow
}

// CheckGuest is the inverse gate for login-style pages: an anonymous
// visitor passes, while an authenticated one is sent to its landing page.
func (g *Guard) CheckGuest() (allowed bool, redirect string) {
	if !g.client.IsLoggedIn() {
		return true, ""
	}
	return false, g.Landing()
}

// Landing picks the post-login destination: administrators go to the admin
// area, everyone else to the dashboard.
func (g *Guard) Landing() string {
	if g.client.HasPermission(authz.PermAdminAccess) || g.client.HasRole("Admin") {
		return "/admin"
	}
	return "/dashboard"
}
