// AngelaMos | 2026
// repository.go

package meal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/core"
)

type Repository interface {
	ReplaceForUser(
		ctx context.Context,
		userID string,
		notes []string,
	) ([]Requirement, error)
	ListForUser(ctx context.Context, userID string) ([]Requirement, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ReplaceForUser deletes the user's requirements and inserts the given
// notes in submission order, in one transaction, so readers never observe
// the emptied intermediate state.
func (r *repository) ReplaceForUser(
	ctx context.Context,
	userID string,
	notes []string,
) ([]Requirement, error) {
	saved := make([]Requirement, 0, len(notes))

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery := `DELETE FROM meal_requirements WHERE user_id = $1`
		if _, err := tx.ExecContext(ctx, deleteQuery, userID); err != nil {
			return fmt.Errorf("delete meal requirements: %w", err)
		}

		insertQuery := `
			INSERT INTO meal_requirements (id, user_id, notes, position)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`

		for i, note := range notes {
			req := Requirement{
				ID:       uuid.New().String(),
				UserID:   userID,
				Notes:    note,
				Position: i,
			}

			err := tx.GetContext(ctx, &req.CreatedAt, insertQuery,
				req.ID,
				req.UserID,
				req.Notes,
				req.Position,
			)
			if err != nil {
				return fmt.Errorf("insert meal requirement: %w", err)
			}

			saved = append(saved, req)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
) ([]Requirement, error) {
	query := `
		SELECT id, user_id, notes, position, created_at
		FROM meal_requirements
		WHERE user_id = $1
		ORDER BY position ASC`

	var requirements []Requirement
	if err := r.db.SelectContext(ctx, &requirements, query, userID); err != nil {
		return nil, fmt.Errorf("list meal requirements: %w", err)
	}

	return requirements, nil
}
