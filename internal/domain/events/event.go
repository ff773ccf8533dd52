package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

type Event struct {
	ID          string
	Name        string
	Description *string
	Longitude   float64
	Latitude    float64
	StartsAt    time.Time
	CreatedAt   time.Time
}

// NewEvent is the input for creating an event.
type NewEvent struct {
	Name        string
	Description *string
	Longitude   float64
	Latitude    float64
	StartsAt    time.Time
}

// Repository persists events and their links to users.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	ListForUser(ctx context.Context, userID string) ([]Event, error)
	// Create inserts the event and its owner link in one transaction.
	Create(ctx context.Context, event Event, ownerID string) error
}
