// AngelaMos | 2026
// service.go

package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/caretrack/go-backend/internal/core"
)

// OwnerDirectory resolves whether the owning user exists before a reminder
// is created for them.
type OwnerDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
}

func NewService(repo Repository, owners OwnerDirectory) *Service {
	return &Service{repo: repo, owners: owners}
}

func (s *Service) Add(
	ctx context.Context,
	ownerID string,
	req CreateReminderRequest,
) (*Reminder, error) {
	exists, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user not found: %w", core.ErrNotFound)
	}

	rem := &Reminder{
		ID:       uuid.New().String(),
		UserID:   ownerID,
		Category: ClassifyCategory(req.Category),
		Note:     req.Note,
	}

	reminderType := req.Type
	if reminderType == "" {
		reminderType = TypeOnce
	}

	if reminderType == TypeOnce {
		if req.DateTime == nil {
			return nil, fmt.Errorf(
				"dateTime required for type=once: %w",
				core.ErrInvalidInput,
			)
		}
		rem.SetOnce(*req.DateTime)
	} else {
		rem.SetRecurring(req.Days, req.Times)
	}

	if err := s.repo.Create(ctx, rem); err != nil {
		return nil, err
	}

	return rem, nil
}

// List returns the user's reminders ordered by effective time: the absolute
// time for one-shot reminders, creation time for recurring ones. The sort is
// stable so reminders sharing a key keep their stored order.
func (s *Service) List(
	ctx context.Context,
	ownerID string,
) ([]Reminder, error) {
	reminders, err := s.repo.ListForUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].EffectiveTime().Before(reminders[j].EffectiveTime())
	})

	return reminders, nil
}

// Update applies a partial update. If the type changes, the time/recurrence
// payload is rebuilt from the resulting type: switching to once keeps a
// supplied or prior time and drops the rule; switching to recurring drops
// the time and carries prior days/times forward unless new ones arrive.
func (s *Service) Update(
	ctx context.Context,
	ownerID, reminderID string,
	req UpdateReminderRequest,
) (*Reminder, error) {
	rem, err := s.getOwned(ctx, ownerID, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		rem.Category = ClassifyCategory(*req.Category)
	}

	if req.Note != nil {
		rem.Note = *req.Note
	}

	resultingType := rem.Type
	if req.Type != nil {
		resultingType = *req.Type
	}

	switch resultingType {
	case TypeOnce:
		at := rem.Time
		if req.DateTime != nil {
			at = req.DateTime
		}
		if at == nil {
			return nil, fmt.Errorf(
				"dateTime required for type=once: %w",
				core.ErrInvalidInput,
			)
		}
		rem.SetOnce(*at)
	case TypeRecurring:
		days, times := req.Days, req.Times
		if prior := rem.Recurrence; prior != nil {
			if days == nil {
				days = prior.Days
			}
			if times == nil {
				times = prior.Times
			}
		}
		rem.SetRecurring(days, times)
	}

	if err := s.repo.Update(ctx, rem); err != nil {
		return nil, err
	}

	return rem, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, reminderID string) error {
	rem, err := s.getOwned(ctx, ownerID, reminderID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, rem.ID)
}

// getOwned collapses "no such reminder" and "reminder owned by someone
// else" into one NotFound, so callers cannot probe for other users' IDs.
func (s *Service) getOwned(
	ctx context.Context,
	ownerID, reminderID string,
) (*Reminder, error) {
	rem, err := s.repo.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, notFoundForUser(ownerID, core.ErrNotFound)
		}
		return nil, err
	}

	if rem.UserID != ownerID {
		return nil, notFoundForUser(ownerID, core.ErrNotFound)
	}

	return rem, nil
}

func notFoundForUser(ownerID string, cause error) error {
	return fmt.Errorf("reminder not found for user %s: %w", ownerID, cause)
}
