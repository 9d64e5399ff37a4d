// AngelaMos | 2026
// repository.go

package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/core"
)

type Repository interface {
	Create(
		ctx context.Context,
		q core.DBTX,
		caregiverID, residentID string,
	) error
	Exists(ctx context.Context, caregiverID, residentID string) (bool, error)
	Delete(ctx context.Context, caregiverID, residentID string) error
	CaregiverOf(ctx context.Context, residentID string) (*Assignment, error)
	CountResidentsOf(ctx context.Context, caregiverID string) (int, error)
	DeleteAllForUser(ctx context.Context, q core.DBTX, userID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the link. A duplicate pair surfaces as core.ErrConflict.
// The query runner is explicit so caretaker creation can bundle the insert
// with the user row in one transaction.
func (r *repository) Create(
	ctx context.Context,
	q core.DBTX,
	caregiverID, residentID string,
) error {
	query := `
		INSERT INTO user_assignments (caregiver_id, resident_id, assigned_at)
		VALUES ($1, $2, NOW())`

	if _, err := q.ExecContext(ctx, query, caregiverID, residentID); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("assignment already exists: %w", core.ErrConflict)
		}
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

func (r *repository) Exists(
	ctx context.Context,
	caregiverID, residentID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_assignments
			WHERE caregiver_id = $1 AND resident_id = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, caregiverID, residentID)
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}

	return exists, nil
}

// Delete is idempotent; removing an absent pair is not an error.
func (r *repository) Delete(
	ctx context.Context,
	caregiverID, residentID string,
) error {
	query := `
		DELETE FROM user_assignments
		WHERE caregiver_id = $1 AND resident_id = $2`

	if _, err := r.db.ExecContext(ctx, query, caregiverID, residentID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	return nil
}

// CaregiverOf returns the earliest assignment link for the resident, or
// core.ErrNotFound when none exists. The schema tolerates multiple
// caregivers; callers that assume one get the first match.
func (r *repository) CaregiverOf(
	ctx context.Context,
	residentID string,
) (*Assignment, error) {
	query := `
		SELECT caregiver_id, resident_id, assigned_at
		FROM user_assignments
		WHERE resident_id = $1
		ORDER BY assigned_at ASC
		LIMIT 1`

	var link Assignment
	err := r.db.GetContext(ctx, &link, query, residentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("caregiver for resident: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find caregiver: %w", err)
	}

	return &link, nil
}

func (r *repository) CountResidentsOf(
	ctx context.Context,
	caregiverID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM user_assignments WHERE caregiver_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, caregiverID); err != nil {
		return 0, fmt.Errorf("count residents: %w", err)
	}

	return count, nil
}

// DeleteAllForUser removes every link touching the user, on either side.
// Takes the caller's transaction; used only during full user deletion.
func (r *repository) DeleteAllForUser(
	ctx context.Context,
	q core.DBTX,
	userID string,
) error {
	query := `
		DELETE FROM user_assignments
		WHERE caregiver_id = $1 OR resident_id = $1`

	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
