// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/assignment"
	"github.com/caretrack/go-backend/internal/auth"
	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/permission"
)

type Service struct {
	db          *sqlx.DB
	repo        Repository
	permissions permission.Repository
	assignments assignment.Repository
	policy      *authz.Evaluator
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	permissions permission.Repository,
	assignments assignment.Repository,
	policy *authz.Evaluator,
) *Service {
	return &Service{
		db:          db,
		repo:        repo,
		permissions: permissions,
		assignments: assignments,
		policy:      policy,
	}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) UpdateLastLogin(ctx context.Context, userID string) error {
	return s.repo.UpdateLastLogin(ctx, userID)
}

// Exists reports whether the user row is present. Reminder and meal flows
// use it to reject writes against unknown owners.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	name string,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser provisions an account with the role's default permission set.
// The user row and the grants land in one transaction so no account ever
// exists half-provisioned.
func (s *Service) CreateUser(
	ctx context.Context,
	actorID string,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         req.Role,
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.repo.Create(ctx, tx, user); err != nil {
			return err
		}

		for _, name := range DefaultPermissions(user.Role) {
			err := s.permissions.GrantTx(ctx, tx, user.ID, name, actorID)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// DeleteUser removes the account and everything hanging off it. Assignment
// links go first, then permission rows, then the user row, all in one
// transaction; a partial cleanup never survives.
func (s *Service) DeleteUser(
	ctx context.Context,
	acting authz.Principal,
	targetID string,
) error {
	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.policy.CanDeleteUser(ctx, acting, targetID); err != nil {
		return err
	}

	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.assignments.DeleteAllForUser(ctx, tx, targetID); err != nil {
			return err
		}
		if err := s.permissions.DeleteAllForUser(ctx, tx, targetID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, targetID)
	})
}

// CreateCaretaker provisions a resident account already linked to the acting
// caregiver. User row, assignment, and default grants commit together.
func (s *Service) CreateCaretaker(
	ctx context.Context,
	acting authz.Principal,
	req CreateCaretakerRequest,
) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         authz.RoleResident,
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.repo.Create(ctx, tx, user); err != nil {
			return err
		}

		if err := s.assignments.Create(ctx, tx, acting.ID, user.ID); err != nil {
			return err
		}

		for _, name := range DefaultPermissions(user.Role) {
			err := s.permissions.GrantTx(ctx, tx, user.ID, name, acting.ID)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// MyCaregiver resolves the earliest-assigned caregiver for the acting
// resident, or core.ErrNotFound when nobody is assigned yet.
func (s *Service) MyCaregiver(
	ctx context.Context,
	residentID string,
) (*User, error) {
	link, err := s.assignments.CaregiverOf(ctx, residentID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, link.CaregiverID)
}

func (s *Service) ListCaretakers(
	ctx context.Context,
	caregiverID string,
) ([]User, error) {
	return s.repo.ListByAssignedCaregiver(ctx, caregiverID)
}

func (s *Service) GetCaretaker(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) (*User, error) {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, residentID)
}

func (s *Service) UpdateCaretaker(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
	req UpdateCaretakerRequest,
) (*User, error) {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AssignCaretaker links an existing resident to the acting caregiver. An
// already-linked pair surfaces as core.ErrConflict.
func (s *Service) AssignCaretaker(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) error {
	role, err := s.repo.RoleOf(ctx, residentID)
	if err != nil {
		return err
	}

	if role != authz.RoleResident {
		return fmt.Errorf(
			"user %s is not a resident: %w",
			residentID,
			core.ErrInvalidInput,
		)
	}

	return s.assignments.Create(ctx, s.db, acting.ID, residentID)
}

// UnassignCaretaker drops the link. The resident account, its permissions,
// and its reminders all stay.
func (s *Service) UnassignCaretaker(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) error {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return err
	}

	return s.assignments.Delete(ctx, acting.ID, residentID)
}

// DeleteCaretaker removes an assigned resident's account entirely, with the
// same cleanup order as DeleteUser.
func (s *Service) DeleteCaretaker(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) error {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return err
	}

	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.assignments.DeleteAllForUser(ctx, tx, residentID); err != nil {
			return err
		}
		if err := s.permissions.DeleteAllForUser(ctx, tx, residentID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, residentID)
	})
}

// SetCaretakerPermissions replaces the resident's grants with exactly the
// given set. Everything not named comes back disabled.
func (s *Service) SetCaretakerPermissions(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
	names []string,
) ([]permission.Permission, error) {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return nil, err
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return permission.ReplaceAllTx(
			ctx,
			tx,
			s.permissions,
			residentID,
			names,
			acting.ID,
		)
	})
	if err != nil {
		return nil, err
	}

	return s.permissions.ListByUser(ctx, residentID)
}

func (s *Service) GetCaretakerPermissions(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) ([]permission.Permission, error) {
	if err := s.requireAssigned(ctx, acting, residentID); err != nil {
		return nil, err
	}

	return s.permissions.ListByUser(ctx, residentID)
}

// requireAssigned collapses "no such resident" and "not your resident" into
// one not-found answer, so the roster does not leak which accounts exist.
// Admins bypass the assignment check.
func (s *Service) requireAssigned(
	ctx context.Context,
	acting authz.Principal,
	residentID string,
) error {
	if acting.Role == authz.RoleAdmin {
		return nil
	}

	assigned, err := s.assignments.Exists(ctx, acting.ID, residentID)
	if err != nil {
		return err
	}

	if !assigned {
		return fmt.Errorf(
			"caretaker not found for caregiver %s: %w",
			acting.ID,
			core.ErrNotFound,
		)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
