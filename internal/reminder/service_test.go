// AngelaMos | 2026
// service_test.go

package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrack/go-backend/internal/core"
)

type fakeRepo struct {
	byID map[string]*Reminder
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Reminder{}}
}

func (f *fakeRepo) Create(_ context.Context, rem *Reminder) error {
	rem.CreatedAt = time.Now()
	stored := *rem
	f.byID[rem.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Reminder, error) {
	rem, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get reminder: %w", core.ErrNotFound)
	}
	copied := *rem
	return &copied, nil
}

func (f *fakeRepo) ListForUser(
	_ context.Context,
	userID string,
) ([]Reminder, error) {
	var out []Reminder
	for _, rem := range f.byID {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, rem *Reminder) error {
	if _, ok := f.byID[rem.ID]; !ok {
		return fmt.Errorf("update reminder: %w", core.ErrNotFound)
	}
	stored := *rem
	f.byID[rem.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete reminder: %w", core.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

type fakeOwners struct {
	known map[string]bool
}

func (f *fakeOwners) Exists(_ context.Context, userID string) (bool, error) {
	return f.known[userID], nil
}

func newTestService(owners ...string) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	known := map[string]bool{}
	for _, id := range owners {
		known[id] = true
	}
	return NewService(repo, &fakeOwners{known: known}), repo
}

func TestAddOnceReminder(t *testing.T) {
	svc, _ := newTestService("alice")
	at := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "medicin",
		Note:     "morning pills",
		Type:     TypeOnce,
		DateTime: &at,
	})
	require.NoError(t, err)

	assert.Equal(t, TypeOnce, rem.Type)
	assert.Equal(t, CategoryMedication, rem.Category)
	require.NotNil(t, rem.Time)
	assert.True(t, rem.Time.Equal(at))
	assert.Nil(t, rem.Recurrence)
}

func TestAddDefaultsToOnce(t *testing.T) {
	svc, _ := newTestService("alice")
	at := time.Now().Add(time.Hour)

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		DateTime: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeOnce, rem.Type)
}

func TestAddOnceRequiresDateTime(t *testing.T) {
	svc, _ := newTestService("alice")

	_, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		Type:     TypeOnce,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Contains(t, err.Error(), "dateTime required for type=once")
}

func TestAddRecurringStoresEmptySlices(t *testing.T) {
	svc, _ := newTestService("alice")

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "exercise",
		Type:     TypeRecurring,
	})
	require.NoError(t, err)

	require.NotNil(t, rem.Recurrence)
	assert.NotNil(t, rem.Recurrence.Days)
	assert.NotNil(t, rem.Recurrence.Times)
	assert.Empty(t, rem.Recurrence.Days)
	assert.Nil(t, rem.Time)
}

func TestAddUnknownOwner(t *testing.T) {
	svc, _ := newTestService("alice")
	at := time.Now()

	_, err := svc.Add(context.Background(), "ghost", CreateReminderRequest{
		Category: "meal",
		DateTime: &at,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateSwitchOnceToRecurring(t *testing.T) {
	svc, _ := newTestService("alice")
	at := time.Now().Add(time.Hour)

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		Type:     TypeOnce,
		DateTime: &at,
	})
	require.NoError(t, err)

	newType := TypeRecurring
	updated, err := svc.Update(
		context.Background(),
		"alice",
		rem.ID,
		UpdateReminderRequest{
			Type: &newType,
			Days: []string{"Mon", "Wed"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, TypeRecurring, updated.Type)
	assert.Nil(t, updated.Time)
	require.NotNil(t, updated.Recurrence)
	assert.Equal(t, []string{"Mon", "Wed"}, updated.Recurrence.Days)
	assert.Empty(t, updated.Recurrence.Times)
}

func TestUpdateSwitchRecurringToOnceNeedsTime(t *testing.T) {
	svc, _ := newTestService("alice")

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		Type:     TypeRecurring,
		Days:     []string{"Tue"},
		Times:    []string{"12:00"},
	})
	require.NoError(t, err)

	newType := TypeOnce
	_, err = svc.Update(
		context.Background(),
		"alice",
		rem.ID,
		UpdateReminderRequest{Type: &newType},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateRecurringCarriesPriorRule(t *testing.T) {
	svc, _ := newTestService("alice")

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		Type:     TypeRecurring,
		Days:     []string{"Tue"},
		Times:    []string{"12:00"},
	})
	require.NoError(t, err)

	note := "lunch"
	updated, err := svc.Update(
		context.Background(),
		"alice",
		rem.ID,
		UpdateReminderRequest{Note: &note},
	)
	require.NoError(t, err)

	assert.Equal(t, "lunch", updated.Note)
	require.NotNil(t, updated.Recurrence)
	assert.Equal(t, []string{"Tue"}, updated.Recurrence.Days)
	assert.Equal(t, []string{"12:00"}, updated.Recurrence.Times)
}

func TestUpdateOtherUsersReminderIsNotFound(t *testing.T) {
	svc, _ := newTestService("alice", "bob")
	at := time.Now()

	rem, err := svc.Add(context.Background(), "alice", CreateReminderRequest{
		Category: "meal",
		DateTime: &at,
	})
	require.NoError(t, err)

	note := "stolen"
	_, err = svc.Update(
		context.Background(),
		"bob",
		rem.ID,
		UpdateReminderRequest{Note: &note},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "reminder not found for user bob")
}

func TestDeleteMissingReminderIsNotFound(t *testing.T) {
	svc, _ := newTestService("alice")

	err := svc.Delete(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListOrdersByEffectiveTime(t *testing.T) {
	svc, repo := newTestService("alice")
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	lateOnce := day.Add(10 * time.Hour)
	earlyOnce := day.Add(8 * time.Hour)

	// seeded directly so created_at is controlled; the fake's map storage
	// yields no inherent order
	repo.byID["late"] = &Reminder{
		ID: "late", UserID: "alice", Category: CategoryMeal,
		CreatedAt: day.Add(time.Minute),
	}
	repo.byID["late"].SetOnce(lateOnce)

	repo.byID["early"] = &Reminder{
		ID: "early", UserID: "alice", Category: CategoryMeal,
		CreatedAt: day.Add(2 * time.Minute),
	}
	repo.byID["early"].SetOnce(earlyOnce)

	repo.byID["rule"] = &Reminder{
		ID: "rule", UserID: "alice", Category: CategoryMeal,
		CreatedAt: day.Add(9 * time.Hour),
	}
	repo.byID["rule"].SetRecurring([]string{"Mon"}, nil)

	listed, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// recurring reminders sort on created_at, one-shots on their time
	assert.Equal(t, "early", listed[0].ID)
	assert.Equal(t, "rule", listed[1].ID)
	assert.Equal(t, "late", listed[2].ID)
}
