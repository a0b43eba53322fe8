package devserver

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

// devUser is a seeded account for local development.
type devUser struct {
	ID           int64
	Username     string
	Role         models.UserRole
	PasswordHash []byte
}

// seedUsers hashes the development accounts at startup. Plaintext passwords
// equal "<username>123".
func seedUsers() map[string]devUser {
	seeds := []struct {
		id       int64
		username string
		role     models.UserRole
	}{
		{1, "admin", models.RoleSuperAdmin},
		{2, "principal", models.RoleAdmin},
		{3, "teacher", models.RoleTeacher},
		{4, "accounts", models.RoleAccountant},
	}

	users := make(map[string]devUser, len(seeds))
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.username+"123"), bcrypt.MinCost)
		if err != nil {
			// bcrypt only fails on invalid cost; MinCost is valid.
			panic(err)
		}
		users[seed.username] = devUser{
			ID:           seed.id,
			Username:     seed.username,
			Role:         seed.role,
			PasswordHash: hash,
		}
	}
	return users
}
