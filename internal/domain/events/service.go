package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/gatherly/server/internal/domain/ids"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// ListForUser returns the events linked to the given user through the
// user_events join table.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Event, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Create mints an event id and persists the event together with an owner
// link for the creating user.
func (s *Service) Create(ctx context.Context, input NewEvent, ownerID string) (Event, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Event{}, fmt.Errorf("event name is required")
	}

	id, err := ids.NewULID()
	if err != nil {
		return Event{}, fmt.Errorf("mint event id: %w", err)
	}

	event := Event{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Longitude:   input.Longitude,
		Latitude:    input.Latitude,
		StartsAt:    input.StartsAt,
	}
	if err := s.repo.Create(ctx, event, ownerID); err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}
