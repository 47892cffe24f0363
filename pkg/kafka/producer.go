package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Producer writes messages to a single topic, hashed by key so events for
// one booking stay ordered.
type Producer struct {
	writer *kafka.Writer
	topic  string
	opts   Options
	closed bool
	mu     sync.RWMutex
}

func NewProducer(opts Options, topic string) (*Producer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(opts.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            opts.compression(),
		MaxAttempts:            opts.MaxAttempts,
		BatchTimeout:           opts.BatchTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger:            opts.errorLogger(),
	}

	return &Producer{writer: writer, topic: topic, opts: opts}, nil
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrProducerClosed
	}
	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}

	if err := p.writer.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	p.opts.Log.Debug("Kafka message published",
		"topic", p.topic,
		"key", msg.Key,
		"event_type", msg.EventType(),
		"event_id", msg.EventID(),
	)
	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
