// AngelaMos | 2026
// dto.go

package reminder

import (
	"time"
)

type CreateReminderRequest struct {
	Category string     `json:"category" validate:"required,max=100"`
	Note     string     `json:"note"     validate:"max=500"`
	Type     string     `json:"type"     validate:"omitempty,oneof=once recurring"`
	DateTime *time.Time `json:"date_time"`
	Days     []string   `json:"days"     validate:"omitempty,dive,max=16"`
	Times    []string   `json:"times"    validate:"omitempty,dive,max=8"`
}

// UpdateReminderRequest is a partial update: nil means leave unchanged.
// Note distinguishes "absent" from "explicitly empty", so a client can clear
// a note with "".
type UpdateReminderRequest struct {
	Category *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Note     *string    `json:"note,omitempty"     validate:"omitempty,max=500"`
	Type     *string    `json:"type,omitempty"     validate:"omitempty,oneof=once recurring"`
	DateTime *time.Time `json:"date_time,omitempty"`
	Days     []string   `json:"days,omitempty"     validate:"omitempty,dive,max=16"`
	Times    []string   `json:"times,omitempty"    validate:"omitempty,dive,max=8"`
}

// ReminderResponse carries the canonical category token, never the raw
// input spelling. Time is set only for one-shot reminders; days/times only
// for recurring ones. The recurrence slices keep their json keys even when
// empty so a recurring reminder always round-trips as {days: [], times: []}.
type ReminderResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Category  string     `json:"category"`
	Note      string     `json:"note,omitempty"`
	Time      *time.Time `json:"time,omitempty"`
	Days      []string   `json:"days"`
	Times     []string   `json:"times"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToReminderResponse(r *Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:        r.ID,
		Type:      r.Type,
		Category:  string(r.Category),
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}

	schedule := r.Schedule()
	switch schedule.Kind {
	case TypeOnce:
		resp.Time = schedule.At
	case TypeRecurring:
		resp.Days = schedule.Days
		resp.Times = schedule.Times
	}

	return resp
}

func ToReminderResponseList(reminders []Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, 0, len(reminders))
	for i := range reminders {
		responses = append(responses, ToReminderResponse(&reminders[i]))
	}
	return responses
}
