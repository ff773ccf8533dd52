package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/domain/events"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// ErrNoIdentity means a resolver ran without a verified identity in
// context. The bearer middleware makes this unreachable on the wired
// routes; hitting it is a routing bug, not a client error.
var ErrNoIdentity = errors.New("no authenticated identity in request context")

type Resolver struct {
	events *events.Service
}

func NewResolver(eventsService *events.Service) *Resolver {
	return &Resolver{events: eventsService}
}

func (r *Resolver) Events(ctx context.Context) ([]*EventResolver, error) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}
	zerolog.Ctx(ctx).Info().Str("subject_id", identity.SubjectID).Msg("events queried")

	list, err := r.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return wrapEvents(list), nil
}

func (r *Resolver) UserEvents(ctx context.Context) ([]*EventResolver, error) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}

	list, err := r.events.ListForUser(ctx, identity.SubjectID)
	if err != nil {
		return nil, err
	}
	return wrapEvents(list), nil
}

type NewEventInput struct {
	Name        string
	Description *string
	Longitude   float64
	Latitude    float64
	StartsAt    float64
}

func (r *Resolver) CreateEvent(ctx context.Context, args struct{ Input NewEventInput }) (*EventResolver, error) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}

	created, err := r.events.Create(ctx, events.NewEvent{
		Name:        args.Input.Name,
		Description: args.Input.Description,
		Longitude:   args.Input.Longitude,
		Latitude:    args.Input.Latitude,
		StartsAt:    time.Unix(int64(args.Input.StartsAt), 0).UTC(),
	}, identity.SubjectID)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("subject_id", identity.SubjectID).
		Str("event_id", created.ID).
		Msg("event created")
	return &EventResolver{event: created}, nil
}

type EventResolver struct {
	event events.Event
}

func (r *EventResolver) ID() graphql.ID {
	return graphql.ID(r.event.ID)
}

func (r *EventResolver) Name() string {
	return r.event.Name
}

func (r *EventResolver) Description() *string {
	return r.event.Description
}

func (r *EventResolver) Longitude() float64 {
	return r.event.Longitude
}

func (r *EventResolver) Latitude() float64 {
	return r.event.Latitude
}

func (r *EventResolver) StartsAt() float64 {
	return float64(r.event.StartsAt.Unix())
}

func wrapEvents(list []events.Event) []*EventResolver {
	resolvers := make([]*EventResolver, 0, len(list))
	for _, event := range list {
		resolvers = append(resolvers, &EventResolver{event: event})
	}
	return resolvers
}
