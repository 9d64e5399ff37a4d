// AngelaMos | 2026
// repository.go

package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	GetByID(ctx context.Context, id string) (*Reminder, error)
	ListForUser(ctx context.Context, userID string) ([]Reminder, error)
	Update(ctx context.Context, r *Reminder) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rem *Reminder) error {
	query := `
		INSERT INTO reminders
			(id, user_id, type, category, note, time_at, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &rem.CreatedAt, query,
		rem.ID,
		rem.UserID,
		rem.Type,
		rem.Category,
		rem.Note,
		rem.Time,
		rem.Recurrence,
	)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Reminder, error) {
	query := `
		SELECT id, user_id, type, category, note, time_at, recurrence,
		       created_at
		FROM reminders
		WHERE id = $1`

	var rem Reminder
	err := r.db.GetContext(ctx, &rem, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get reminder: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}

	return &rem, nil
}

// ListForUser orders by effective schedule time: the absolute time for
// one-shot reminders, falling back to creation time where time_at is null.
func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
) ([]Reminder, error) {
	query := `
		SELECT id, user_id, type, category, note, time_at, recurrence,
		       created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY COALESCE(time_at, created_at) ASC`

	var reminders []Reminder
	if err := r.db.SelectContext(ctx, &reminders, query, userID); err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

func (r *repository) Update(ctx context.Context, rem *Reminder) error {
	query := `
		UPDATE reminders
		SET type = $2, category = $3, note = $4, time_at = $5, recurrence = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		rem.ID,
		rem.Type,
		rem.Category,
		rem.Note,
		rem.Time,
		rem.Recurrence,
	)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update reminder: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reminders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete reminder: %w", core.ErrNotFound)
	}

	return nil
}
