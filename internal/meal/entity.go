// AngelaMos | 2026
// entity.go

package meal

import (
	"time"
)

// Requirement is one free-text dietary note. A user's requirements form a
// flat ordered list that is fully replaced on every set, never diffed.
type Requirement struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Notes     string    `db:"notes"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}
