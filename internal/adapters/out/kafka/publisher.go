// Package kafka publishes shipment lifecycle notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// LifecyclePublisher is a dispatcher observer that writes one record per
// notification. Records are keyed by shipment id, so the events of one
// shipment stay in order on a single partition.
type LifecyclePublisher struct {
	writer Writer
}

var _ services.Observer = (*LifecyclePublisher)(nil)

// batchTimeout bounds how long a synchronous WriteMessages waits for more
// records before flushing. The kafka-go default is one second.
const batchTimeout = 10 * time.Millisecond

// NewLifecyclePublisher creates a publisher writing to topic on brokerURL.
func NewLifecyclePublisher(brokerURL, topic string) *LifecyclePublisher {
	return NewLifecyclePublisherWithWriter(newWriter(brokerURL, topic))
}

func newWriter(brokerURL, topic string) *skafka.Writer {
	return &skafka.Writer{
		Addr:                   skafka.TCP(brokerURL),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           skafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewLifecyclePublisherWithWriter creates a publisher on an existing writer.
func NewLifecyclePublisherWithWriter(w Writer) *LifecyclePublisher {
	return &LifecyclePublisher{writer: w}
}

// Name identifies the observer in dispatcher logs.
func (p *LifecyclePublisher) Name() string {
	return "kafka-lifecycle"
}

func (p *LifecyclePublisher) OnStatusChanged(ctx context.Context, n shipment.StatusChanged) error {
	return p.publish(ctx, statusChangedMessage(n))
}

func (p *LifecyclePublisher) OnCourierAssigned(ctx context.Context, n shipment.CourierAssigned) error {
	return p.publish(ctx, courierAssignedMessage(n))
}

func (p *LifecyclePublisher) OnIncidentReported(ctx context.Context, n shipment.IncidentReported) error {
	return p.publish(ctx, incidentReportedMessage(n))
}

// Close flushes and closes the writer.
func (p *LifecyclePublisher) Close() error {
	return p.writer.Close()
}

func (p *LifecyclePublisher) publish(ctx context.Context, msg LifecycleMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", msg.Type, err)
	}

	err = p.writer.WriteMessages(ctx, skafka.Message{
		Key:   []byte(msg.ShipmentID),
		Value: value,
		Headers: []skafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("writing %s for shipment %s: %w", msg.Type, msg.ShipmentID, err)
	}
	return nil
}
