package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

type authStub struct {
	authenticated bool
	expired       bool
	roles         []models.UserRole
}

func (a *authStub) IsAuthenticated() bool { return a.authenticated }
func (a *authStub) IsTokenExpired() bool  { return a.expired }

func (a *authStub) HasAnyRole(roles ...models.UserRole) bool {
	for _, want := range roles {
		for _, have := range a.roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

func TestCheckAllowsAuthenticatedUser(t *testing.T) {
	g := New(&authStub{authenticated: true})

	decision := g.Check("sessions")

	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Redirect)
	assert.Empty(t, decision.ReturnURL)
}

func TestCheckRedirectsToLogin(t *testing.T) {
	tests := []struct {
		name string
		auth *authStub
	}{
		{"never signed in", &authStub{}},
		{"token expired", &authStub{authenticated: true, expired: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := New(tt.auth).Check("sessions")

			assert.False(t, decision.Allowed)
			assert.Equal(t, LoginRoute, decision.Redirect)
			assert.Equal(t, "sessions", decision.ReturnURL)
		})
	}
}

func TestCheckRolesAllowsMatchingRole(t *testing.T) {
	g := New(&authStub{authenticated: true, roles: []models.UserRole{models.RoleAdmin}})

	decision := g.CheckRoles("sessions", models.RoleSuperAdmin, models.RoleAdmin)

	assert.True(t, decision.Allowed)
}

func TestCheckRolesSendsWrongRoleToUnauthorized(t *testing.T) {
	g := New(&authStub{authenticated: true, roles: []models.UserRole{models.RoleTeacher}})

	decision := g.CheckRoles("sessions", models.RoleSuperAdmin, models.RoleAdmin)

	assert.False(t, decision.Allowed)
	assert.Equal(t, UnauthorizedRoute, decision.Redirect)
	assert.Empty(t, decision.ReturnURL)
}

func TestCheckRolesUnauthenticatedGoesToLoginFirst(t *testing.T) {
	g := New(&authStub{authenticated: true, expired: true, roles: []models.UserRole{models.RoleAdmin}})

	decision := g.CheckRoles("sessions", models.RoleAdmin)

	assert.False(t, decision.Allowed)
	assert.Equal(t, LoginRoute, decision.Redirect)
	assert.Equal(t, "sessions", decision.ReturnURL)
}
