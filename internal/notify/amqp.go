package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the slice of *amqp.Channel the forwarder needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Forwarder republishes bus events to a RabbitMQ topic exchange, routed by event type.
type Forwarder struct {
	channel  Channel
	exchange string
	logger   *slog.Logger
	closers  []func() error
}

func NewForwarder(ch Channel, exchange string, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Forwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	f := NewForwarder(ch, exchange, logger)
	f.closers = []func() error{ch.Close, conn.Close}
	return f, nil
}

// Attach subscribes the forwarder to every HR event on bus.
func (f *Forwarder) Attach(bus *events.EventBus) {
	bus.SubscribeAll(f.Handle)
}

func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventID(), err)
	}

	err = f.channel.PublishWithContext(ctx, f.exchange, event.EventType(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.EventID(),
		Type:         event.EventType(),
		Timestamp:    event.OccurredAt(),
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.EventID(), err)
	}

	f.logger.Debug("event forwarded",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"exchange", f.exchange)
	return nil
}

func (f *Forwarder) Close() error {
	var first error
	for _, c := range f.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
