package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/streadway/amqp"
)

const DefaultExchange = "funnel.events"

// AMQPCollector publishes funnel events to a topic exchange. The routing key
// is the snake-cased event name, e.g. "quiz_completed".
type AMQPCollector struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPCollector(amqpURL, exchange string) (*AMQPCollector, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPCollector{conn: conn, channel: ch, exchange: exchange}, nil
}

// RoutingKey maps an event name to its routing key.
func RoutingKey(eventName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(eventName)), " ", "_")
}

func (c *AMQPCollector) Track(_ context.Context, event *entities.Event) error {
	return c.publish(RoutingKey(event.EventName), map[string]interface{}{
		"type":       event.EventName,
		"event_id":   event.EventID.String(),
		"user_id":    event.UserID,
		"visitor_id": event.VisitorID,
		"payload":    event.Envelope(),
	}, event.EventTime)
}

func (c *AMQPCollector) SetProfile(_ context.Context, userID string, props map[string]interface{}) error {
	return c.publish("profile.set", map[string]interface{}{
		"type":    "profile_set",
		"user_id": userID,
		"payload": props,
	}, time.Now())
}

func (c *AMQPCollector) IncrementProfile(_ context.Context, userID, property string, by int64) error {
	return c.publish("profile.increment", map[string]interface{}{
		"type":    "profile_increment",
		"user_id": userID,
		"payload": map[string]int64{property: by},
	}, time.Now())
}

func (c *AMQPCollector) publish(routingKey string, message map[string]interface{}, at time.Time) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	// amqp.Channel is not safe for concurrent publishing
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel.Publish(
		c.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    at,
			Body:         body,
		},
	)
}

func (c *AMQPCollector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
