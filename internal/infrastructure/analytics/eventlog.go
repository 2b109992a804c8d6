package analytics

import (
	"context"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
)

// EventLogCollector keeps events and profiles in Postgres so the funnel
// report can be computed locally.
type EventLogCollector struct {
	events   repositories.EventRepository
	profiles repositories.ProfileRepository
}

func NewEventLogCollector(events repositories.EventRepository, profiles repositories.ProfileRepository) *EventLogCollector {
	return &EventLogCollector{events: events, profiles: profiles}
}

func (c *EventLogCollector) Track(ctx context.Context, event *entities.Event) error {
	return c.events.Create(ctx, event)
}

func (c *EventLogCollector) SetProfile(ctx context.Context, userID string, props map[string]interface{}) error {
	return c.profiles.Merge(ctx, userID, props)
}

func (c *EventLogCollector) IncrementProfile(ctx context.Context, userID, property string, by int64) error {
	return c.profiles.Increment(ctx, userID, property, by)
}
