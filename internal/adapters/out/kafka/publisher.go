// Package kafka publishes delivery lifecycle events to a Kafka topic.
// Publishing is best-effort: it happens after the owning transaction
// commits and a failure never rolls the transition back.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/IBM/sarama"
)

// Publisher emits delivery status-change events through a synchronous
// Kafka producer, keyed by the public delivery identifier so events for
// one delivery stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher connects a synchronous producer to the given brokers.
// The producer waits for acknowledgement from all in-sync replicas.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   slog.Default().With("component", "kafka_publisher"),
	}, nil
}

// PublishDeliveryStatusChanged sends the event to the configured topic.
func (p *Publisher) PublishDeliveryStatusChanged(
	_ context.Context, event ports.DeliveryStatusChangedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.DeliveryID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error("failed to publish delivery status event",
			"delivery_id", event.DeliveryID,
			"status", event.Status,
			"error", err)
		return err
	}

	p.logger.Debug("published delivery status event",
		"delivery_id", event.DeliveryID,
		"status", event.Status,
		"partition", partition,
		"offset", offset)
	return nil
}

// Close shuts the underlying producer down.
func (p *Publisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event.
func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

// PublishDeliveryStatusChanged discards the event.
func (NoopPublisher) PublishDeliveryStatusChanged(
	_ context.Context, _ ports.DeliveryStatusChangedEvent,
) error {
	return nil
}
