// AngelaMos | 2026
// service_test.go

package meal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrack/go-backend/internal/core"
)

type fakeRepo struct {
	stored map[string][]Requirement
}

func (f *fakeRepo) ReplaceForUser(
	_ context.Context,
	userID string,
	notes []string,
) ([]Requirement, error) {
	saved := make([]Requirement, 0, len(notes))
	for i, note := range notes {
		saved = append(saved, Requirement{
			ID:       note,
			UserID:   userID,
			Notes:    note,
			Position: i,
		})
	}
	f.stored[userID] = saved
	return saved, nil
}

func (f *fakeRepo) ListForUser(
	_ context.Context,
	userID string,
) ([]Requirement, error) {
	return f.stored[userID], nil
}

type fakeUsers struct {
	known map[string]bool
}

func (f *fakeUsers) Exists(_ context.Context, userID string) (bool, error) {
	return f.known[userID], nil
}

func newTestService(users ...string) *Service {
	known := map[string]bool{}
	for _, id := range users {
		known[id] = true
	}
	return NewService(
		&fakeRepo{stored: map[string][]Requirement{}},
		&fakeUsers{known: known},
	)
}

func notesOf(reqs []Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Notes)
	}
	return out
}

func TestSetCleansSubmission(t *testing.T) {
	svc := newTestService("alice")

	saved, err := svc.Set(
		context.Background(),
		"alice",
		[]string{"A", "A", " ", "B", ""},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, notesOf(saved))
}

func TestSetTrimsAndPreservesOrder(t *testing.T) {
	svc := newTestService("alice")

	saved, err := svc.Set(
		context.Background(),
		"alice",
		[]string{"  gluten free ", "no nuts", "gluten free"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"gluten free", "no nuts"}, notesOf(saved))
}

func TestSetEmptySubmissionClears(t *testing.T) {
	svc := newTestService("alice")

	saved, err := svc.Set(context.Background(), "alice", nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSetUnknownUser(t *testing.T) {
	svc := newTestService("alice")

	_, err := svc.Set(context.Background(), "ghost", []string{"A"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
