// AngelaMos | 2026
// entity.go

package assignment

import (
	"time"
)

// Assignment is a directed caregiver-to-resident delegation link. The pair
// (caregiver_id, resident_id) is the composite identity; the schema places
// no uniqueness constraint on the resident alone, so the graph is genuinely
// many-to-many even though the common case is one caregiver per resident.
type Assignment struct {
	CaregiverID string    `db:"caregiver_id"`
	ResidentID  string    `db:"resident_id"`
	AssignedAt  time.Time `db:"assigned_at"`
}
