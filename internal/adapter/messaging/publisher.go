// Package messaging publishes booking events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

// Header keys set on every booking message.
const (
	HeaderEventType = "event_type"
	HeaderSupplier  = "supplier"
	HeaderEventID   = "event_id"
)

const (
	producerRetryMax = 3
	producerTimeout  = 10 * time.Second
)

// KafkaPublisher sends booking events through a synchronous producer.
// Messages are keyed by PNR so events for one booking share a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

var _ domain.BookingPublisher = (*KafkaPublisher)(nil)

// NewSaramaConfig returns the producer configuration used for booking events.
func NewSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = producerRetryMax
	cfg.Producer.Timeout = producerTimeout
	cfg.Producer.Idempotent = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// NewKafkaPublisher connects a producer to the configured brokers.
func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg.ClientID))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewPublisher(producer, cfg.Topic, log), nil
}

// NewPublisher wraps an existing producer.
func NewPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// PublishBooking sends one booking event.
func (p *KafkaPublisher) PublishBooking(ctx context.Context, event domain.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PNR),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.Type)},
			{Key: []byte(HeaderSupplier), Value: []byte(event.Supplier)},
			{Key: []byte(HeaderEventID), Value: []byte(event.EventID)},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send booking event: %w", err)
	}

	p.log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("pnr", event.PNR).
		Str(logger.FieldSupplier, event.Supplier).
		Msg("Booking event published")
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. It stands in when Kafka is disabled.
type NoopPublisher struct{}

var _ domain.BookingPublisher = NoopPublisher{}

// PublishBooking implements domain.BookingPublisher.
func (NoopPublisher) PublishBooking(context.Context, domain.BookingEvent) error {
	return nil
}
