package models

// UserRole represents the flat role set used for route gating.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleTeacher    UserRole = "TEACHER"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleParent     UserRole = "PARENT"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the auth endpoint reply: a bearer token plus the identity
// it was issued for.
type AuthResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	UserID   int64    `json:"userId"`
}

// AuthUser is the identity cached client-side for the running session.
type AuthUser struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	UserID   int64    `json:"userId"`
}
