package kafka

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ds124wfegd/notification-service/internal/consumer"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const DefaultTopic = "notifications.send-notification"

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads send notification events from a Kafka topic. A message is
// committed once it is processed or found permanently invalid; transient
// failures are retried every retryDelay and the message stays uncommitted
// until then.
type Consumer struct {
	reader     messageReader
	handler    consumer.Handler
	retryDelay time.Duration
}

func NewConsumer(cfg ConsumerConfig, handler consumer.Handler) *Consumer {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,
		StartOffset:    kafka.FirstOffset,
	})

	return newConsumer(reader, handler)
}

func newConsumer(reader messageReader, handler consumer.Handler) *Consumer {
	return &Consumer{reader: reader, handler: handler, retryDelay: time.Second}
}

// Run blocks until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			logrus.WithError(err).Error("Error reading message from Kafka")

			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		if !c.handle(ctx, msg) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logrus.WithError(err).WithField("offset", msg.Offset).Error("Failed to commit Kafka message")
		}
	}
}

// handle processes msg until it succeeds or fails permanently. It returns
// false when ctx is cancelled first, the message must not be committed then.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) bool {
	entry := logrus.WithFields(logrus.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, msg.Value)
		switch {
		case err == nil:
			entry.Info("Notification event processed")
			return true
		case consumer.IsPermanent(err):
			entry.WithError(err).Warn("Dropping invalid notification event")
			return true
		}

		entry.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"payload": string(msg.Value),
		}).Error("Failed to process notification event, it will be retried")

		if !c.wait(ctx) {
			return false
		}
	}
}

func (c *Consumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.retryDelay):
		return true
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
