package repositories

import (
	"context"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"gorm.io/gorm"
)

// StepCount is the number of distinct sessions that emitted an event.
type StepCount struct {
	EventName string `json:"event_name"`
	Sessions  int64  `json:"sessions"`
}

type FunnelRepository interface {
	CountSessionsByEvent(ctx context.Context, eventNames []string, from, to time.Time) ([]StepCount, error)
}

type funnelRepository struct {
	db *gorm.DB
}

func NewFunnelRepository(db *gorm.DB) FunnelRepository {
	return &funnelRepository{db}
}

func (r *funnelRepository) CountSessionsByEvent(ctx context.Context, eventNames []string, from, to time.Time) ([]StepCount, error) {
	var counts []StepCount

	query := r.db.WithContext(ctx).Model(&entities.Event{}).
		Select("event_name, COUNT(DISTINCT session_id) AS sessions").
		Where("event_name IN ?", eventNames)
	if !from.IsZero() {
		query = query.Where("event_time >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("event_time <= ?", to.UTC())
	}

	if err := query.Group("event_name").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
