// AngelaMos | 2026
// entity_test.go

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/permission"
)

func TestDefaultPermissions(t *testing.T) {
	tests := []struct {
		role string
		want []string
	}{
		{authz.RoleResident, []string{
			permission.ViewReminders,
			permission.CreateReminders,
		}},
		{authz.RoleCaregiver, []string{
			permission.ViewReminders,
			permission.CreateReminders,
			permission.MealRequirements,
		}},
		{authz.RoleAdmin, []string{
			permission.ViewReminders,
			permission.CreateReminders,
			permission.MealRequirements,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPermissions(tt.role))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("caregiver"))
	assert.True(t, ValidRole("resident"))
	assert.False(t, ValidRole("user"))
	assert.False(t, ValidRole(""))
}

func TestListUsersParamsNormalize(t *testing.T) {
	p := ListUsersParams{Page: 0, PageSize: 500}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}
