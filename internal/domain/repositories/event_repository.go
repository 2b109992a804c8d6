package repositories

import (
	"context"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventNames []string) ([]entities.Event, int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db}
}

func (r *eventRepository) Create(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetEvents(ctx context.Context, page, limit int, orderBy string, from, to time.Time, eventNames []string) ([]entities.Event, int64, error) {
	var events []entities.Event
	var total int64

	baseQuery := r.db.WithContext(ctx).Model(&entities.Event{})
	if !from.IsZero() {
		baseQuery = baseQuery.Where("event_time >= ?", from.UTC())
	}
	if !to.IsZero() {
		baseQuery = baseQuery.Where("event_time <= ?", to.UTC())
	}
	if len(eventNames) > 0 {
		baseQuery = baseQuery.Where("event_name IN ?", eventNames)
	}

	// Get total count AFTER applying all filters
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	if err := baseQuery.Order(orderBy).Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
