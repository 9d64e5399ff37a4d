// AngelaMos | 2026
// entity.go

package reminder

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeOnce      = "once"
	TypeRecurring = "recurring"
)

// Recurrence is the stored rule for recurring reminders: ordered weekday
// tokens (e.g. "Mon") and ordered "HH:MM" time-of-day strings. It lives in
// a jsonb column so future rule fields need no schema change. Days and
// Times are never nil on a stored recurring reminder, only possibly empty.
type Recurrence struct {
	Days  []string `json:"days"`
	Times []string `json:"times"`
}

func (r Recurrence) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal recurrence: %w", err)
	}
	return data, nil
}

func (r *Recurrence) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		return nil
	default:
		return fmt.Errorf("scan recurrence: unsupported type %T", src)
	}
}

// Reminder is stored flat with both payload columns nullable; the
// SetOnce/SetRecurring mutators are the only write paths, so exactly one of
// Time and Recurrence is populated for any persisted row.
type Reminder struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	Type       string      `db:"type"`
	Category   Category    `db:"category"`
	Note       string      `db:"note"`
	Time       *time.Time  `db:"time_at"`
	Recurrence *Recurrence `db:"recurrence"`
	CreatedAt  time.Time   `db:"created_at"`
}

// SetOnce switches the reminder to the one-shot shape, clearing any
// recurrence rule.
func (r *Reminder) SetOnce(at time.Time) {
	r.Type = TypeOnce
	r.Time = &at
	r.Recurrence = nil
}

// SetRecurring switches the reminder to the recurring shape, clearing the
// absolute time. Nil slices are stored as empty, never null.
func (r *Reminder) SetRecurring(days, times []string) {
	if days == nil {
		days = []string{}
	}
	if times == nil {
		times = []string{}
	}

	r.Type = TypeRecurring
	r.Time = nil
	r.Recurrence = &Recurrence{Days: days, Times: times}
}

// Schedule is the tagged-union view of a reminder's payload.
type Schedule struct {
	Kind  string
	At    *time.Time // populated iff Kind == TypeOnce
	Days  []string   // populated iff Kind == TypeRecurring
	Times []string
}

func (r *Reminder) Schedule() Schedule {
	if r.Type == TypeRecurring {
		days, times := []string{}, []string{}
		if r.Recurrence != nil {
			if r.Recurrence.Days != nil {
				days = r.Recurrence.Days
			}
			if r.Recurrence.Times != nil {
				times = r.Recurrence.Times
			}
		}
		return Schedule{Kind: TypeRecurring, Days: days, Times: times}
	}

	return Schedule{Kind: TypeOnce, At: r.Time}
}

// EffectiveTime is the list sort key: the absolute time for one-shot
// reminders, creation time otherwise.
func (r *Reminder) EffectiveTime() time.Time {
	if r.Time != nil {
		return *r.Time
	}
	return r.CreatedAt
}
