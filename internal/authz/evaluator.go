// AngelaMos | 2026
// evaluator.go

package authz

import (
	"context"
	"fmt"

	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/permission"
)

// Principal is the identity resolved from a verified credential.
type Principal struct {
	ID   string
	Role string
}

const (
	RoleAdmin     = "admin"
	RoleCaregiver = "caregiver"
	RoleResident  = "resident"
)

type PermissionChecker interface {
	HasPermission(ctx context.Context, userID, name string) (bool, error)
}

type AssignmentChecker interface {
	Exists(ctx context.Context, caregiverID, residentID string) (bool, error)
	CountResidentsOf(ctx context.Context, caregiverID string) (int, error)
}

type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// Evaluator is the stateless per-request authorization decision function.
// Every check re-reads current store state; there is no caching, so a
// concurrent grant or revoke is visible to the very next decision.
type Evaluator struct {
	permissions PermissionChecker
	assignments AssignmentChecker
	roles       RoleLookup
}

func NewEvaluator(
	permissions PermissionChecker,
	assignments AssignmentChecker,
	roles RoleLookup,
) *Evaluator {
	return &Evaluator{
		permissions: permissions,
		assignments: assignments,
		roles:       roles,
	}
}

// CanManageRemindersFor decides whether acting may create, update, or delete
// reminders belonging to targetUserID. Rules apply in order:
//
//  1. an admin may act on anyone
//  2. a user may act on itself iff it holds CREATE_REMINDERS
//  3. a caregiver may act on an assigned resident, regardless of the
//     resident's own permission flags
//  4. everything else is denied
//
// Any store failure resolves to deny, never to allow.
func (e *Evaluator) CanManageRemindersFor(
	ctx context.Context,
	acting Principal,
	targetUserID string,
) bool {
	return e.reminderRule(ctx, acting, targetUserID, permission.CreateReminders)
}

// CanViewRemindersFor applies the same ordered rules as
// CanManageRemindersFor with VIEW_REMINDERS as the self-service gate, so a
// caregiver can always read what it can manage.
func (e *Evaluator) CanViewRemindersFor(
	ctx context.Context,
	acting Principal,
	targetUserID string,
) bool {
	return e.reminderRule(ctx, acting, targetUserID, permission.ViewReminders)
}

func (e *Evaluator) reminderRule(
	ctx context.Context,
	acting Principal,
	targetUserID string,
	selfPermission string,
) bool {
	if acting.Role == RoleAdmin {
		return true
	}

	if acting.ID == targetUserID {
		ok, err := e.permissions.HasPermission(ctx, acting.ID, selfPermission)
		if err != nil {
			return false
		}
		return ok
	}

	if acting.Role == RoleCaregiver {
		assigned, err := e.assignments.Exists(ctx, acting.ID, targetUserID)
		if err != nil {
			return false
		}
		return assigned
	}

	return false
}

// CanAccessMealRequirements gates the meal-requirement surface on the acting
// user's own MEAL_REQUIREMENTS grant. There is deliberately no
// caregiver-assignment override here, unlike reminders.
func (e *Evaluator) CanAccessMealRequirements(
	ctx context.Context,
	actingUserID string,
) bool {
	ok, err := e.permissions.HasPermission(
		ctx,
		actingUserID,
		permission.MealRequirements,
	)
	if err != nil {
		return false
	}
	return ok
}

// CanDeleteUser decides whether acting may delete targetUserID. Only admins
// may delete anyone; a caregiver still holding assigned residents is not
// deletable until every resident is unassigned or reassigned.
func (e *Evaluator) CanDeleteUser(
	ctx context.Context,
	acting Principal,
	targetUserID string,
) error {
	if acting.Role != RoleAdmin {
		return fmt.Errorf("only admins can delete users: %w", core.ErrForbidden)
	}

	targetRole, err := e.roles.RoleOf(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("resolve target user: %w", err)
	}

	if targetRole == RoleCaregiver {
		count, err := e.assignments.CountResidentsOf(ctx, targetUserID)
		if err != nil {
			return fmt.Errorf("count assigned residents: %w", err)
		}
		if count > 0 {
			return fmt.Errorf(
				"caregiver has %d assigned residents: %w",
				count,
				core.ErrHasDependencies,
			)
		}
	}

	return nil
}
