// AngelaMos | 2026
// entity.go

package permission

import (
	"time"
)

// Permission is a named capability toggle scoped to one user. Revoking
// flips enabled to false rather than deleting the row, so the grant audit
// trail (granted_by, granted_at) survives.
type Permission struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"permission_name"`
	Enabled   bool      `db:"enabled"`
	GrantedBy string    `db:"granted_by"`
	GrantedAt time.Time `db:"granted_at"`
}

const (
	CreateReminders  = "CREATE_REMINDERS"
	ViewReminders    = "VIEW_REMINDERS"
	MealRequirements = "MEAL_REQUIREMENTS"

	// Reserved, not yet surfaced anywhere.
	MealSuggestions = "MEAL_SUGGESTIONS"
	Statistics      = "STATISTICS"
)

// Known lists the permission vocabulary. The store does not validate names
// against it; unknown names are stored as-is.
var Known = []string{
	CreateReminders,
	ViewReminders,
	MealRequirements,
	MealSuggestions,
	Statistics,
}
