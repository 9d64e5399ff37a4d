// AngelaMos | 2026
// evaluator_test.go

package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/permission"
)

type fakePermissions struct {
	granted map[string]bool // key: userID + "/" + name
	err     error
}

func (f *fakePermissions) HasPermission(
	_ context.Context,
	userID, name string,
) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.granted[userID+"/"+name], nil
}

type fakeAssignments struct {
	pairs  map[string]bool // key: caregiverID + "/" + residentID
	counts map[string]int
	err    error
}

func (f *fakeAssignments) Exists(
	_ context.Context,
	caregiverID, residentID string,
) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pairs[caregiverID+"/"+residentID], nil
}

func (f *fakeAssignments) CountResidentsOf(
	_ context.Context,
	caregiverID string,
) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[caregiverID], nil
}

type fakeRoles struct {
	roles map[string]string
}

func (f *fakeRoles) RoleOf(
	_ context.Context,
	userID string,
) (string, error) {
	role, ok := f.roles[userID]
	if !ok {
		return "", core.ErrNotFound
	}
	return role, nil
}

func newTestEvaluator(
	perms *fakePermissions,
	assigns *fakeAssignments,
	roles *fakeRoles,
) *Evaluator {
	if perms == nil {
		perms = &fakePermissions{granted: map[string]bool{}}
	}
	if assigns == nil {
		assigns = &fakeAssignments{
			pairs:  map[string]bool{},
			counts: map[string]int{},
		}
	}
	if roles == nil {
		roles = &fakeRoles{roles: map[string]string{}}
	}
	return NewEvaluator(perms, assigns, roles)
}

func TestAdminManagesAnyReminders(t *testing.T) {
	e := newTestEvaluator(nil, nil, nil)

	admin := Principal{ID: "root", Role: RoleAdmin}
	assert.True(t, e.CanManageRemindersFor(context.Background(), admin, "anyone"))
	assert.True(t, e.CanViewRemindersFor(context.Background(), admin, "anyone"))
}

func TestSelfNeedsPermissionGrant(t *testing.T) {
	perms := &fakePermissions{granted: map[string]bool{
		"alice/" + permission.CreateReminders: true,
	}}
	e := newTestEvaluator(perms, nil, nil)

	alice := Principal{ID: "alice", Role: RoleResident}
	assert.True(t, e.CanManageRemindersFor(context.Background(), alice, "alice"))

	// view uses a separate grant which alice does not hold
	assert.False(t, e.CanViewRemindersFor(context.Background(), alice, "alice"))
}

func TestCaregiverOverridesResidentFlags(t *testing.T) {
	assigns := &fakeAssignments{
		pairs:  map[string]bool{"carol/rex": true},
		counts: map[string]int{},
	}
	e := newTestEvaluator(nil, assigns, nil)

	carol := Principal{ID: "carol", Role: RoleCaregiver}

	// rex holds no grants at all, assignment alone decides
	assert.True(t, e.CanManageRemindersFor(context.Background(), carol, "rex"))
	assert.False(t, e.CanManageRemindersFor(context.Background(), carol, "stranger"))
}

func TestResidentCannotActOnOthers(t *testing.T) {
	perms := &fakePermissions{granted: map[string]bool{
		"alice/" + permission.CreateReminders: true,
	}}
	e := newTestEvaluator(perms, nil, nil)

	alice := Principal{ID: "alice", Role: RoleResident}
	assert.False(t, e.CanManageRemindersFor(context.Background(), alice, "bob"))
}

func TestStoreFailureDenies(t *testing.T) {
	perms := &fakePermissions{err: errors.New("connection refused")}
	assigns := &fakeAssignments{err: errors.New("connection refused")}
	e := newTestEvaluator(perms, assigns, nil)

	alice := Principal{ID: "alice", Role: RoleResident}
	carol := Principal{ID: "carol", Role: RoleCaregiver}

	assert.False(t, e.CanManageRemindersFor(context.Background(), alice, "alice"))
	assert.False(t, e.CanManageRemindersFor(context.Background(), carol, "rex"))
	assert.False(t, e.CanAccessMealRequirements(context.Background(), "alice"))
}

func TestMealRequirementsHaveNoCaregiverOverride(t *testing.T) {
	perms := &fakePermissions{granted: map[string]bool{
		"alice/" + permission.MealRequirements: true,
	}}
	e := newTestEvaluator(perms, nil, nil)

	assert.True(t, e.CanAccessMealRequirements(context.Background(), "alice"))
	assert.False(t, e.CanAccessMealRequirements(context.Background(), "carol"))
}

func TestOnlyAdminsDeleteUsers(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{"rex": RoleResident}}
	e := newTestEvaluator(nil, nil, roles)

	carol := Principal{ID: "carol", Role: RoleCaregiver}
	err := e.CanDeleteUser(context.Background(), carol, "rex")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	admin := Principal{ID: "root", Role: RoleAdmin}
	assert.NoError(t, e.CanDeleteUser(context.Background(), admin, "rex"))
}

func TestDeleteCaregiverWithResidentsBlocked(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{
		"carol": RoleCaregiver,
		"dave":  RoleCaregiver,
	}}
	assigns := &fakeAssignments{
		pairs:  map[string]bool{},
		counts: map[string]int{"carol": 2},
	}
	e := newTestEvaluator(nil, assigns, roles)

	admin := Principal{ID: "root", Role: RoleAdmin}

	err := e.CanDeleteUser(context.Background(), admin, "carol")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrHasDependencies)
	assert.Contains(t, err.Error(), "2 assigned residents")

	assert.NoError(t, e.CanDeleteUser(context.Background(), admin, "dave"))
}

func TestDeleteCaregiverSucceedsAfterUnassign(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{"carol": RoleCaregiver}}
	assigns := &fakeAssignments{
		pairs:  map[string]bool{"carol/rex": true},
		counts: map[string]int{"carol": 1},
	}
	e := newTestEvaluator(nil, assigns, roles)

	admin := Principal{ID: "root", Role: RoleAdmin}

	err := e.CanDeleteUser(context.Background(), admin, "carol")
	require.ErrorIs(t, err, core.ErrHasDependencies)

	// unassign rex, then the same request goes through
	delete(assigns.pairs, "carol/rex")
	assigns.counts["carol"] = 0

	assert.NoError(t, e.CanDeleteUser(context.Background(), admin, "carol"))
}
