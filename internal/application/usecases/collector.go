package usecases

import (
	"context"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

// Collector delivers funnel events and profile updates to an analytics
// backend. Implementations may fail; the Tracker absorbs every failure.
type Collector interface {
	Track(ctx context.Context, event *entities.Event) error
	SetProfile(ctx context.Context, userID string, props map[string]interface{}) error
	IncrementProfile(ctx context.Context, userID, property string, by int64) error
}
