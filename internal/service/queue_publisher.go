package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/localrot/internal/queue"
)

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
}

// NoopPublisher drops every event.  Used when the broker is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishReservationConfirmed(context.Context, queue.ReservationConfirmedEvent) error {
	return nil
}

// AMQPPublisher publishes events to RabbitMQ.  A connection is dialed per
// publish, which keeps the HTTP path free of connection state at the cost
// of a round trip.
type AMQPPublisher struct {
	URL string
}

// PublishReservationConfirmed publishes event to the reservation.confirmed
// queue as a persistent JSON message.  Errors are logged and returned so
// the caller can choose to ignore them.
func (p AMQPPublisher) PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warnf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warnf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.ReservationConfirmedQueue, // name
		true,                            // durable
		false,                           // autoDelete
		false,                           // exclusive
		false,                           // noWait
		nil,                             // args
	); err != nil {
		log.Warnf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue.ReservationConfirmedQueue, false, false, pub); err != nil {
		log.Warnf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
