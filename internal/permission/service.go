// AngelaMos | 2026
// service.go

package permission

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/caretrack/go-backend/internal/core"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

// HasPermission reports whether the user currently holds an enabled grant of
// the named permission. Names are not validated against the known
// vocabulary.
func (s *Service) HasPermission(
	ctx context.Context,
	userID, name string,
) (bool, error) {
	return s.repo.ExistsEnabled(ctx, userID, name)
}

func (s *Service) ListEnabled(
	ctx context.Context,
	userID string,
) ([]string, error) {
	return s.repo.ListEnabledNames(ctx, userID)
}

func (s *Service) ListDetails(
	ctx context.Context,
	userID string,
) ([]Permission, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Grant(
	ctx context.Context,
	userID, name, grantedBy string,
) error {
	if err := s.repo.Grant(ctx, userID, name, grantedBy); err != nil {
		return fmt.Errorf("grant %s: %w", name, err)
	}
	return nil
}

func (s *Service) Revoke(ctx context.Context, userID, name string) error {
	if err := s.repo.Revoke(ctx, userID, name); err != nil {
		return fmt.Errorf("revoke %s: %w", name, err)
	}
	return nil
}

// ReplaceAll supersedes the user's entire enabled set with exactly the given
// names, regardless of prior state. Disable and re-grant commit together, so
// a concurrent reader never observes the half-applied state.
func (s *Service) ReplaceAll(
	ctx context.Context,
	userID string,
	names []string,
	grantedBy string,
) error {
	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return ReplaceAllTx(ctx, tx, s.repo, userID, names, grantedBy)
	})
	if err != nil {
		return fmt.Errorf("replace permissions: %w", err)
	}
	return nil
}

// ReplaceAllTx disables every grant for the user on the given runner, then
// grants exactly the named set. Granting is an upsert, so a name appearing
// twice or overlapping the prior state still yields one enabled row. Callers
// own the transaction.
func ReplaceAllTx(
	ctx context.Context,
	q core.DBTX,
	repo Repository,
	userID string,
	names []string,
	grantedBy string,
) error {
	if err := repo.DisableAll(ctx, q, userID); err != nil {
		return err
	}

	for _, name := range names {
		if err := repo.GrantTx(ctx, q, userID, name, grantedBy); err != nil {
			return err
		}
	}

	return nil
}
