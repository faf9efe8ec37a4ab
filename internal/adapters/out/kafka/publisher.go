// Package kafka publishes order domain events as JSON messages keyed by
// order id, so that every event of one order lands on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const contentType = "application/json"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	Source       string
	BatchTimeout time.Duration
}

// Publisher implements ports.OrderEventPublisher.
type Publisher struct {
	writer MessageWriter
	source string
}

var _ ports.OrderEventPublisher = (*Publisher)(nil)

func NewPublisher(cfg Config) (*Publisher, error) {
	var problems []error
	if len(cfg.Brokers) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("brokers"))
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("topic"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	return NewPublisherWithWriter(writer, cfg.Source), nil
}

// NewPublisherWithWriter wraps an already configured writer.
func NewPublisherWithWriter(w MessageWriter, source string) *Publisher {
	if source == "" {
		source = "fulfillment"
	}
	return &Publisher{writer: w, source: source}
}

// Publish writes all events in one batch.
func (p *Publisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := p.message(e)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish %d order events: %w", len(messages), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

type eventDTO struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Source      string            `json:"source"`
	OrderID     string            `json:"orderId"`
	OrderNumber string            `json:"orderNumber,omitempty"`
	From        string            `json:"fromStatus"`
	To          string            `json:"toStatus"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

func (p *Publisher) message(e order.DomainEvent) (kafka.Message, error) {
	data, err := json.Marshal(eventDTO{
		ID:          e.ID.String(),
		Type:        string(e.Type),
		Source:      p.source,
		OrderID:     e.OrderID.String(),
		OrderNumber: e.OrderNumber,
		From:        e.From.String(),
		To:          e.To.String(),
		OccurredAt:  e.OccurredAt.UTC(),
		Attributes:  e.Attributes,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", e.ID, err)
	}

	return kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(e.ID.String())},
			{Key: "event-type", Value: []byte(e.Type)},
			{Key: "source", Value: []byte(p.source)},
			{Key: "content-type", Value: []byte(contentType)},
		},
		Time: e.OccurredAt,
	}, nil
}
