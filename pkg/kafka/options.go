package kafka

import (
	"fmt"
	"time"

	"dinebook/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Options holds the broker settings shared by producers and consumers.
type Options struct {
	Brokers      []string
	MaxAttempts  int
	BatchTimeout time.Duration
	Compression  string // "none", "gzip", "snappy", "lz4", "zstd"
	MaxRetries   int
	StartOffset  int64
	Log          *logger.Logger
}

func DefaultOptions(brokers []string, log *logger.Logger) Options {
	return Options{
		Brokers:      brokers,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Compression:  "snappy",
		MaxRetries:   3,
		StartOffset:  kafka.FirstOffset,
		Log:          log,
	}
}

func (o Options) validate() error {
	if len(o.Brokers) == 0 {
		return fmt.Errorf("at least one broker is required")
	}
	for i, b := range o.Brokers {
		if b == "" {
			return fmt.Errorf("broker %d cannot be empty", i)
		}
	}
	if o.Log == nil {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}

func (o Options) compression() compress.Compression {
	switch o.Compression {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none":
		return 0
	default:
		return compress.Snappy
	}
}

func (o Options) errorLogger() kafka.Logger {
	return kafka.LoggerFunc(func(msg string, args ...any) {
		o.Log.Error(fmt.Sprintf(msg, args...), "component", "kafka")
	})
}
