// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/logger"
	"storefront/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Event types
const (
	OrderPlaced        = "order.placed"
	OrderStatusUpdated = "order.status_updated"
	OrderDeleted       = "order.deleted"
)

// OrderEvent is the message body published for an order change.
type OrderEvent struct {
	Type    string    `json:"type"`
	OrderID string    `json:"orderId"`
	Status  string    `json:"status"`
	Total   float64   `json:"total"`
	At      time.Time `json:"at"`
}

// NewOrderEvent builds an event of kind for order.
func NewOrderEvent(kind string, order *models.Order) OrderEvent {
	return OrderEvent{
		Type:    kind,
		OrderID: order.OrderID,
		Status:  order.Status,
		Total:   order.Total,
		At:      time.Now().UTC(),
	}
}

// Publisher sends order events somewhere.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// KafkaPublisher implements Publisher using Sarama.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}
	logger.Log.Info("Kafka producer connected", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// ProducerConfig is the Sarama configuration used for order events.
func ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	return config
}

// Publish sends event keyed by order id so one order's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(body),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to push event to Kafka topic %q: %w", p.topic, err)
	}
	logger.Debug(ctx, "Order event published",
		zap.String("type", event.Type), zap.String("order_id", event.OrderID),
		zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NoopPublisher) Close() error                              { return nil }
