// Package feed carries change announcements for event notification sets
// over a RabbitMQ topic exchange. The payload is only the event ID:
// consumers recompute grouped views from the stored records, so the
// message never has to carry the records themselves.
package feed

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"admitd/internal/ports/output"
)

const routingPrefix = "notifications.changed."

type tickPayload struct {
	EventID string `json:"event_id"`
}

var _ output.FeedPublisher = (*Publisher)(nil)

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Announce(ctx context.Context, eventID string) error {
	b, err := json.Marshal(tickPayload{EventID: eventID})
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingPrefix+eventID, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
