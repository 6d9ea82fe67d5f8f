package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const reservationQueueName = "reservation.events"

// Publisher sends reservation events to RabbitMQ. It dials per publish
// so a broker restart never leaves the process holding a dead
// connection; event volume here is low enough that the extra dial does
// not matter. A nil Publisher is a no-op so callers can run without a
// broker in development.
type Publisher struct {
	url    string
	logger *zap.Logger
}

// NewPublisher builds a Publisher for the given AMQP URL. A nil logger
// disables logging.
func NewPublisher(url string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{url: url, logger: logger}
}

// Publish sends one event to the reservation.events queue. Errors are
// logged and returned so callers can ignore failures without
// interrupting the main request flow. Messages are marked persistent.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	if p == nil || p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(reservationQueueName, true, false, false, false, nil); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", reservationQueueName, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq publish failed",
			zap.String("type", ev.Type),
			zap.Uint64("reservation_id", ev.ReservationID),
			zap.Error(err))
		return err
	}
	return nil
}
