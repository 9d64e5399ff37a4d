// AngelaMos | 2026
// dto_test.go

package reminder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderResponseRecurringKeepsRecurrenceKeys(t *testing.T) {
	rem := &Reminder{
		ID:        "r1",
		UserID:    "alice",
		Category:  CategoryMeal,
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	rem.SetRecurring(nil, nil)

	data, err := json.Marshal(ToReminderResponse(rem))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"days":[]`)
	assert.Contains(t, string(data), `"times":[]`)
	assert.NotContains(t, string(data), `"time"`)
}

func TestReminderResponseRecurringAfterOnceSwitch(t *testing.T) {
	rem := &Reminder{
		ID:       "r2",
		UserID:   "alice",
		Category: CategoryMedication,
	}
	rem.SetOnce(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))
	rem.SetRecurring([]string{"Mon", "Wed"}, []string{"08:00"})

	resp := ToReminderResponse(rem)
	require.Equal(t, TypeRecurring, resp.Type)
	assert.Nil(t, resp.Time)
	assert.Equal(t, []string{"Mon", "Wed"}, resp.Days)
	assert.Equal(t, []string{"08:00"}, resp.Times)
}

func TestReminderResponseRecurringNullStoredRule(t *testing.T) {
	// A rule scanned from a legacy row can carry null slices; the response
	// still emits empty arrays.
	rem := &Reminder{
		ID:         "r3",
		Type:       TypeRecurring,
		Category:   CategoryMeal,
		Recurrence: &Recurrence{},
	}

	data, err := json.Marshal(ToReminderResponse(rem))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"days":[]`)
	assert.Contains(t, string(data), `"times":[]`)
}

func TestReminderResponseOnceCarriesTime(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	rem := &Reminder{ID: "r4", Category: CategoryRest}
	rem.SetOnce(at)

	resp := ToReminderResponse(rem)
	require.Equal(t, TypeOnce, resp.Type)
	require.NotNil(t, resp.Time)
	assert.True(t, at.Equal(*resp.Time))
}
