package guard

import (
	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

// Screen routes the guard can redirect to.
const (
	LoginRoute        = "login"
	UnauthorizedRoute = "unauthorized"
)

// Auth is the slice of the auth service the guard consults.
type Auth interface {
	IsAuthenticated() bool
	IsTokenExpired() bool
	HasAnyRole(roles ...models.UserRole) bool
}

// Decision is the outcome of a guard check. When not allowed, Redirect
// names the screen to go to; ReturnURL carries the originally requested
// target so login can navigate back after success.
type Decision struct {
	Allowed   bool
	Redirect  string
	ReturnURL string
}

// Guard protects navigation into authenticated screens.
type Guard struct {
	auth Auth
}

// New constructs a Guard over the auth service.
func New(auth Auth) *Guard {
	return &Guard{auth: auth}
}

// Check allows entry when the user is authenticated with an unexpired
// token, otherwise redirects to login carrying the attempted target.
func (g *Guard) Check(target string) Decision {
	if g.auth.IsAuthenticated() && !g.auth.IsTokenExpired() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LoginRoute, ReturnURL: target}
}

// CheckRoles is the role-gated variant: an authenticated user lacking all
// of the allowed roles is sent to the unauthorized screen instead.
func (g *Guard) CheckRoles(target string, allowed ...models.UserRole) Decision {
	if !g.auth.IsAuthenticated() || g.auth.IsTokenExpired() {
		return Decision{Redirect: LoginRoute, ReturnURL: target}
	}
	if g.auth.HasAnyRole(allowed...) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: UnauthorizedRoute}
}
