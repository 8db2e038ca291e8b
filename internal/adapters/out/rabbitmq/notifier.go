// Package rabbitmq queues customer-facing shipment notifications on RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the notifier uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// CustomerNotification is the JSON body of a queued message. A downstream
// mailer turns it into an email or SMS.
type CustomerNotification struct {
	ShipmentID string    `json:"shipment_id"`
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CustomerNotifier is a dispatcher observer that queues one persistent
// message per notification on a durable queue.
type CustomerNotifier struct {
	channel Channel
	queue   string
}

var _ services.Observer = (*CustomerNotifier)(nil)

// NewCustomerNotifier declares queue as durable and returns a notifier
// publishing to it through the default exchange.
func NewCustomerNotifier(channel Channel, queue string) (*CustomerNotifier, error) {
	if _, err := channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return nil, fmt.Errorf("declaring queue %s: %w", queue, err)
	}

	return &CustomerNotifier{
		channel: channel,
		queue:   queue,
	}, nil
}

// Dial opens a connection and a channel to url. The caller closes both.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("opening channel: %w", err)
	}

	return conn, ch, nil
}

// Name identifies the observer in dispatcher logs.
func (n *CustomerNotifier) Name() string {
	return "rabbitmq-customer"
}

func (n *CustomerNotifier) OnStatusChanged(ctx context.Context, e shipment.StatusChanged) error {
	return n.publish(ctx, CustomerNotification{
		ShipmentID: e.ShipmentID.String(),
		Kind:       "status",
		Text:       statusText(e.To),
		OccurredAt: e.OccurredAt.UTC(),
	})
}

func (n *CustomerNotifier) OnCourierAssigned(ctx context.Context, e shipment.CourierAssigned) error {
	return n.publish(ctx, CustomerNotification{
		ShipmentID: e.ShipmentID.String(),
		Kind:       "courier",
		Text:       "A courier has been assigned to your shipment.",
		OccurredAt: e.OccurredAt.UTC(),
	})
}

func (n *CustomerNotifier) OnIncidentReported(ctx context.Context, e shipment.IncidentReported) error {
	return n.publish(ctx, CustomerNotification{
		ShipmentID: e.ShipmentID.String(),
		Kind:       "incident",
		Text:       "An incident was reported for your shipment: " + e.Description,
		OccurredAt: e.OccurredAt.UTC(),
	})
}

func (n *CustomerNotifier) publish(ctx context.Context, msg CustomerNotification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	return n.channel.PublishWithContext(
		ctx,
		"",      // exchange
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ShipmentID + ":" + msg.Kind + ":" + msg.OccurredAt.Format(time.RFC3339Nano),
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
}

func statusText(status shipment.Status) string {
	//nolint:exhaustive // remaining statuses share the generic text
	switch status {
	case shipment.InTransit:
		return "Your shipment is on its way."
	case shipment.OutForDelivery:
		return "Your shipment is out for delivery today."
	case shipment.Delivered:
		return "Your shipment has been delivered."
	case shipment.Cancelled:
		return "Your shipment has been cancelled."
	case shipment.Returned:
		return "Your shipment is being returned to the sender."
	default:
		return "Your shipment status is now " + status.String() + "."
	}
}
