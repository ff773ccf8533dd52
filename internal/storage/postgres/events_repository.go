package postgres

import (
	"context"
	"fmt"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, description, longitude, latitude, starts_at, created_at
  FROM events
 ORDER BY starts_at
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepository) ListForUser(ctx context.Context, userID string) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT e.id, e.name, e.description, e.longitude, e.latitude, e.starts_at, e.created_at
  FROM events e
  JOIN user_events ue ON ue.event_id = e.id
 WHERE ue.user_id = $1
 ORDER BY e.starts_at
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Create inserts the event and its owner link inside one transaction so a
// failed link insert leaves no orphan event behind.
func (r *EventRepository) Create(ctx context.Context, event events.Event, ownerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO events (id, name, description, longitude, latitude, starts_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
`, event.ID, event.Name, event.Description, event.Longitude, event.Latitude, event.StartsAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO user_events (event_id, user_id, owner)
VALUES ($1, $2, true)
`, event.ID, ownerID)
	if err != nil {
		return fmt.Errorf("insert user event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]events.Event, error) {
	var result []events.Event
	for rows.Next() {
		var event events.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Description,
			&event.Longitude,
			&event.Latitude,
			&event.StartsAt,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return result, nil
}
