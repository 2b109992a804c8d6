package analytics

import (
	"context"
	"errors"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

// MultiCollector fans every call out to all collectors. One failing collector
// does not stop the others; their errors are joined.
type MultiCollector struct {
	collectors []usecases.Collector
}

func NewMultiCollector(collectors ...usecases.Collector) *MultiCollector {
	active := make([]usecases.Collector, 0, len(collectors))
	for _, c := range collectors {
		if c != nil {
			active = append(active, c)
		}
	}
	return &MultiCollector{collectors: active}
}

func (m *MultiCollector) Len() int {
	return len(m.collectors)
}

func (m *MultiCollector) Track(ctx context.Context, event *entities.Event) error {
	return m.each(func(c usecases.Collector) error { return c.Track(ctx, event) })
}

func (m *MultiCollector) SetProfile(ctx context.Context, userID string, props map[string]interface{}) error {
	return m.each(func(c usecases.Collector) error { return c.SetProfile(ctx, userID, props) })
}

func (m *MultiCollector) IncrementProfile(ctx context.Context, userID, property string, by int64) error {
	return m.each(func(c usecases.Collector) error { return c.IncrementProfile(ctx, userID, property, by) })
}

func (m *MultiCollector) each(fn func(usecases.Collector) error) error {
	var errs []error
	for _, c := range m.collectors {
		if err := fn(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
