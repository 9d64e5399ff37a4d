// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/permission"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == authz.RoleAdmin
}

func (u *User) IsCaregiver() bool {
	return u.Role == authz.RoleCaregiver
}

func ValidRole(role string) bool {
	switch role {
	case authz.RoleAdmin, authz.RoleCaregiver, authz.RoleResident:
		return true
	}
	return false
}

// DefaultPermissions is what a freshly provisioned account starts with.
// Residents get the reminder pair; staff roles additionally manage their own
// meal requirements.
func DefaultPermissions(role string) []string {
	base := []string{
		permission.ViewReminders,
		permission.CreateReminders,
	}

	switch role {
	case authz.RoleAdmin, authz.RoleCaregiver:
		return append(base, permission.MealRequirements)
	default:
		return base
	}
}
