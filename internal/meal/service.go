// AngelaMos | 2026
// service.go

package meal

import (
	"context"
	"fmt"
	"strings"

	"github.com/caretrack/go-backend/internal/core"
)

type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Set replaces the user's requirement list with exactly the cleaned
// submission: entries are trimmed, blanks dropped, and duplicates collapse
// onto their first occurrence, preserving order.
func (s *Service) Set(
	ctx context.Context,
	userID string,
	notes []string,
) ([]Requirement, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user not found: %w", core.ErrNotFound)
	}

	return s.repo.ReplaceForUser(ctx, userID, cleanNotes(notes))
}

func (s *Service) Get(
	ctx context.Context,
	userID string,
) ([]Requirement, error) {
	return s.repo.ListForUser(ctx, userID)
}

func cleanNotes(notes []string) []string {
	seen := make(map[string]struct{}, len(notes))
	cleaned := make([]string, 0, len(notes))

	for _, note := range notes {
		trimmed := strings.TrimSpace(note)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}

	return cleaned
}
