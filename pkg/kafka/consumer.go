package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads a topic as part of a consumer group and commits each
// message after its handler finishes, retried or not.
type Consumer struct {
	reader  *kafka.Reader
	topic   string
	groupID string
	opts    Options
	handler MessageHandler
	backoff time.Duration
	closed  bool
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConsumer(opts Options, topic, groupID string, handler MessageHandler) (*Consumer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        opts.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: time.Second,
		StartOffset:    opts.StartOffset,
		ErrorLogger:    opts.errorLogger(),
	})

	return &Consumer{
		reader:  reader,
		topic:   topic,
		groupID: groupID,
		opts:    opts,
		handler: handler,
		backoff: 500 * time.Millisecond,
	}, nil
}

// Start blocks until ctx is cancelled or the consumer is closed.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConsumerClosed
	}
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.opts.Log.Info("Kafka consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		km, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.opts.Log.Warn("Kafka fetch failed", "topic", c.topic, "error", err)
			if !sleep(ctx, time.Second) {
				return ctx.Err()
			}
			continue
		}

		msg := fromKafkaMessage(km)
		if err := c.process(ctx, msg); err != nil {
			c.opts.Log.Error("Kafka message dropped",
				"topic", c.topic,
				"key", msg.Key,
				"event_type", msg.EventType(),
				"retries", msg.RetryCount(),
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, km); err != nil && ctx.Err() == nil {
			c.opts.Log.Warn("Kafka commit failed", "topic", c.topic, "offset", km.Offset, "error", err)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg Message) error {
	for {
		err := c.handler(ctx, msg)
		if err == nil {
			return nil
		}
		if !ShouldRetry(err, msg.RetryCount(), c.opts.MaxRetries) {
			return err
		}
		msg.IncrementRetryCount()
		c.opts.Log.Warn("Retrying Kafka message",
			"key", msg.Key,
			"attempt", msg.RetryCount(),
			"max_retries", c.opts.MaxRetries,
			"error", err,
		)
		if !sleep(ctx, c.backoff*time.Duration(msg.RetryCount())) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.reader.Close()
	c.wg.Wait()
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
