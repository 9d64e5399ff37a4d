// AngelaMos | 2026
// repository.go

package permission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/core"
)

type Repository interface {
	ExistsEnabled(ctx context.Context, userID, name string) (bool, error)
	ListEnabledNames(ctx context.Context, userID string) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]Permission, error)
	Grant(ctx context.Context, userID, name, grantedBy string) error
	Revoke(ctx context.Context, userID, name string) error
	DisableAll(ctx context.Context, q core.DBTX, userID string) error
	GrantTx(
		ctx context.Context,
		q core.DBTX,
		userID, name, grantedBy string,
	) error
	DeleteAllForUser(ctx context.Context, q core.DBTX, userID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExistsEnabled(
	ctx context.Context,
	userID, name string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_permissions
			WHERE user_id = $1 AND permission_name = $2 AND enabled = TRUE
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, name); err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}

	return exists, nil
}

func (r *repository) ListEnabledNames(
	ctx context.Context,
	userID string,
) ([]string, error) {
	query := `
		SELECT permission_name
		FROM user_permissions
		WHERE user_id = $1 AND enabled = TRUE
		ORDER BY granted_at ASC, permission_name ASC`

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, fmt.Errorf("list enabled permissions: %w", err)
	}

	return names, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Permission, error) {
	query := `
		SELECT id, user_id, permission_name, enabled, granted_by, granted_at
		FROM user_permissions
		WHERE user_id = $1
		ORDER BY granted_at ASC, permission_name ASC`

	var permissions []Permission
	if err := r.db.SelectContext(ctx, &permissions, query, userID); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	return permissions, nil
}

// Grant upserts: one row per (user, permission name), re-granting refreshes
// granted_by and granted_at on the existing row.
func (r *repository) Grant(
	ctx context.Context,
	userID, name, grantedBy string,
) error {
	if err := grant(ctx, r.db, userID, name, grantedBy); err != nil {
		return err
	}
	return nil
}

// GrantTx is Grant on the caller's query runner, so user provisioning can
// bundle the default grants with the user row in one transaction.
func (r *repository) GrantTx(
	ctx context.Context,
	q core.DBTX,
	userID, name, grantedBy string,
) error {
	return grant(ctx, q, userID, name, grantedBy)
}

func grant(
	ctx context.Context,
	q core.DBTX,
	userID, name, grantedBy string,
) error {
	query := `
		INSERT INTO user_permissions
			(id, user_id, permission_name, enabled, granted_by, granted_at)
		VALUES ($1, $2, $3, TRUE, $4, NOW())
		ON CONFLICT (user_id, permission_name)
		DO UPDATE SET enabled = TRUE, granted_by = $4, granted_at = NOW()`

	if _, err := q.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		userID,
		name,
		grantedBy,
	); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}

	return nil
}

// Revoke disables the row if present. A missing row is not an error.
func (r *repository) Revoke(ctx context.Context, userID, name string) error {
	query := `
		UPDATE user_permissions
		SET enabled = FALSE
		WHERE user_id = $1 AND permission_name = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, name); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}

	return nil
}

// DisableAll flips every grant for the user to disabled on the caller's
// query runner. Replace-all composes it with re-grants in one transaction.
func (r *repository) DisableAll(
	ctx context.Context,
	q core.DBTX,
	userID string,
) error {
	query := `UPDATE user_permissions SET enabled = FALSE WHERE user_id = $1`

	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("disable permissions: %w", err)
	}

	return nil
}

// DeleteAllForUser hard-deletes every row for the user. Only full user
// deletion calls this; it takes the caller's transaction.
func (r *repository) DeleteAllForUser(
	ctx context.Context,
	q core.DBTX,
	userID string,
) error {
	query := `DELETE FROM user_permissions WHERE user_id = $1`

	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete permissions: %w", err)
	}

	return nil
}
