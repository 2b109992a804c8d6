package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/metrics"
	"github.com/rs/zerolog/log"
)

var ErrCollectorClosed = errors.New("collector is closed")

const deliveryTimeout = 10 * time.Second

type delivery struct {
	operation string
	send      func(ctx context.Context) error
}

// AsyncCollector queues calls and delivers them from a worker goroutine so
// requests never wait on the network. A full queue drops the call.
type AsyncCollector struct {
	next  usecases.Collector
	queue chan delivery

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncCollector(next usecases.Collector, size int) *AsyncCollector {
	if size <= 0 {
		size = 1024
	}
	c := &AsyncCollector{
		next:  next,
		queue: make(chan delivery, size),
	}
	c.wg.Add(1)
	go c.work()
	return c
}

func (c *AsyncCollector) Track(_ context.Context, event *entities.Event) error {
	return c.enqueue("track", func(ctx context.Context) error {
		return c.next.Track(ctx, event)
	})
}

func (c *AsyncCollector) SetProfile(_ context.Context, userID string, props map[string]interface{}) error {
	return c.enqueue("set_profile", func(ctx context.Context) error {
		return c.next.SetProfile(ctx, userID, props)
	})
}

func (c *AsyncCollector) IncrementProfile(_ context.Context, userID, property string, by int64) error {
	return c.enqueue("increment_profile", func(ctx context.Context) error {
		return c.next.IncrementProfile(ctx, userID, property, by)
	})
}

func (c *AsyncCollector) enqueue(operation string, send func(ctx context.Context) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrCollectorClosed
	}

	select {
	case c.queue <- delivery{operation: operation, send: send}:
		return nil
	default:
		metrics.EventsDropped.Inc()
		return errors.New("delivery queue is full")
	}
}

func (c *AsyncCollector) work() {
	defer c.wg.Done()
	for d := range c.queue {
		c.deliver(d)
	}
}

func (c *AsyncCollector) deliver(d delivery) {
	defer func() {
		if r := recover(); r != nil {
			metrics.CollectorFailures.WithLabelValues(d.operation).Inc()
			log.Error().Interface("panic", r).Str("operation", d.operation).Msg("Analytics delivery panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	if err := d.send(ctx); err != nil {
		metrics.CollectorFailures.WithLabelValues(d.operation).Inc()
		log.Error().Err(err).Str("operation", d.operation).Msg("Analytics delivery failed")
	}
}

// Close stops accepting calls and waits for the queue to drain or ctx to
// expire.
func (c *AsyncCollector) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
