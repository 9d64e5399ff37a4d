// AngelaMos | 2026
// service_test.go

package permission

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrack/go-backend/internal/core"
)

// fakeRepo keeps one row per (user, name) with an enabled flag, mirroring
// the upsert semantics of the real store.
type fakeRepo struct {
	rows map[string]map[string]*Permission
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]map[string]*Permission{}}
}

func (f *fakeRepo) seed(userID, name string, enabled bool) {
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]*Permission{}
	}
	f.rows[userID][name] = &Permission{
		UserID:  userID,
		Name:    name,
		Enabled: enabled,
	}
}

func (f *fakeRepo) enabledNames(userID string) []string {
	names := []string{}
	for name, p := range f.rows[userID] {
		if p.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f *fakeRepo) ExistsEnabled(
	_ context.Context,
	userID, name string,
) (bool, error) {
	p, ok := f.rows[userID][name]
	return ok && p.Enabled, nil
}

func (f *fakeRepo) ListEnabledNames(
	_ context.Context,
	userID string,
) ([]string, error) {
	return f.enabledNames(userID), nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]Permission, error) {
	out := []Permission{}
	for _, p := range f.rows[userID] {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) Grant(
	ctx context.Context,
	userID, name, grantedBy string,
) error {
	return f.GrantTx(ctx, nil, userID, name, grantedBy)
}

func (f *fakeRepo) Revoke(_ context.Context, userID, name string) error {
	if p, ok := f.rows[userID][name]; ok {
		p.Enabled = false
	}
	return nil
}

func (f *fakeRepo) DisableAll(
	_ context.Context,
	_ core.DBTX,
	userID string,
) error {
	for _, p := range f.rows[userID] {
		p.Enabled = false
	}
	return nil
}

func (f *fakeRepo) GrantTx(
	_ context.Context,
	_ core.DBTX,
	userID, name, grantedBy string,
) error {
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]*Permission{}
	}
	f.rows[userID][name] = &Permission{
		UserID:    userID,
		Name:      name,
		Enabled:   true,
		GrantedBy: grantedBy,
		GrantedAt: time.Now(),
	}
	return nil
}

func (f *fakeRepo) DeleteAllForUser(
	_ context.Context,
	_ core.DBTX,
	userID string,
) error {
	delete(f.rows, userID)
	return nil
}

func TestReplaceAllNetEffect(t *testing.T) {
	tests := []struct {
		name  string
		prior map[string]bool // name -> enabled
		given []string
		want  []string
	}{
		{
			name:  "empty prior state",
			prior: map[string]bool{},
			given: []string{ViewReminders, CreateReminders},
			want:  []string{CreateReminders, ViewReminders},
		},
		{
			name: "overlapping prior state",
			prior: map[string]bool{
				ViewReminders:    true,
				MealRequirements: true,
			},
			given: []string{ViewReminders, CreateReminders},
			want:  []string{CreateReminders, ViewReminders},
		},
		{
			name: "empty set clears everything",
			prior: map[string]bool{
				ViewReminders:   true,
				CreateReminders: true,
			},
			given: []string{},
			want:  []string{},
		},
		{
			name: "previously revoked name is re-enabled",
			prior: map[string]bool{
				MealRequirements: false,
			},
			given: []string{MealRequirements},
			want:  []string{MealRequirements},
		},
		{
			name:  "duplicate names collapse to one grant",
			prior: map[string]bool{},
			given: []string{ViewReminders, ViewReminders},
			want:  []string{ViewReminders},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			for name, enabled := range tt.prior {
				repo.seed("resident", name, enabled)
			}

			err := ReplaceAllTx(
				context.Background(),
				nil,
				repo,
				"resident",
				tt.given,
				"caregiver",
			)
			require.NoError(t, err)

			assert.Equal(t, tt.want, repo.enabledNames("resident"))
		})
	}
}

func TestReplaceAllLeavesOtherUsersAlone(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("resident", ViewReminders, true)
	repo.seed("neighbor", ViewReminders, true)

	err := ReplaceAllTx(
		context.Background(),
		nil,
		repo,
		"resident",
		[]string{},
		"caregiver",
	)
	require.NoError(t, err)

	assert.Empty(t, repo.enabledNames("resident"))
	assert.Equal(t, []string{ViewReminders}, repo.enabledNames("neighbor"))
}
