// Package consumer provides the Redis Streams consumer for identity events.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"nav-hub/app/domain"
	"nav-hub/app/metrics"
)

const (
	statusProcessed = "processed"
	statusFailed    = "failed"
	statusDiscarded = "discarded"
)

// Config holds consumer configuration.
type Config struct {
	// RedisURL is the Redis connection URL.
	RedisURL string
	// GroupName is the consumer group name.
	GroupName string
	// ConsumerName is this consumer's name within the group.
	ConsumerName string
	// StreamKey is the Redis Stream key to consume from.
	StreamKey string
	// BatchSize is the number of messages to read at once.
	BatchSize int64
	// BlockTimeout is how long to block waiting for messages.
	BlockTimeout time.Duration
}

// DefaultConfig returns a default consumer configuration.
func DefaultConfig() Config {
	return Config{
		RedisURL:     "redis://localhost:6379",
		GroupName:    "nav-hub",
		ConsumerName: "nav-hub-1",
		StreamKey:    "identity:events",
		BatchSize:    10,
		BlockTimeout: 5 * time.Second,
	}
}

// EventHandler processes identity events from the stream.
type EventHandler interface {
	// HandleIdentityEvent processes a single identity event.
	HandleIdentityEvent(ctx context.Context, event domain.IdentityEvent) error
}

// Consumer consumes identity events from Redis Streams and feeds them to the
// router. Messages the handler rejects stay pending for redelivery; messages
// that cannot be parsed are acknowledged and dropped so a poison message does
// not wedge the group.
type Consumer struct {
	client       *redis.Client
	config       Config
	handler      EventHandler
	logger       *slog.Logger
	shutdownChan chan struct{}
	stopOnce     sync.Once
}

// NewConsumer creates a new Redis Streams consumer.
func NewConsumer(config Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Consumer{
		client:       redis.NewClient(opts),
		config:       config,
		handler:      handler,
		logger:       logger.With("component", "identity_consumer"),
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start begins consuming events from the stream.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.ensureConsumerGroup(ctx); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	c.logger.Info("starting identity consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	go c.consumeLoop(ctx)
	return nil
}

// Stop gracefully stops the consumer.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdownChan)
		if c.client != nil {
			c.client.Close()
		}
	})
}

// Ping checks connectivity to Redis.
func (c *Consumer) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ensureConsumerGroup creates the consumer group if it doesn't exist.
func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// consumeLoop continuously reads and processes events.
func (c *Consumer) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled, stopping")
			return
		case <-c.shutdownChan:
			c.logger.Info("consumer shutdown requested, stopping")
			return
		default:
			if err := c.readAndProcess(ctx); err != nil {
				c.logger.Error("error processing events", "error", err)
				time.Sleep(time.Second) // Back off on error
			}
		}
	}
}

// readAndProcess reads one batch from the stream and processes it.
func (c *Consumer) readAndProcess(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if err == redis.Nil {
		// No messages available
		return nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			event, err := c.parseEvent(message)
			if err != nil {
				c.logger.Warn("discarding malformed message",
					"message_id", message.ID,
					"error", err,
				)
				metrics.RecordIdentityEvent("malformed", statusDiscarded)
				c.ack(ctx, message.ID)
				continue
			}

			if err := c.handler.HandleIdentityEvent(ctx, event); err != nil {
				c.logger.Error("failed to process identity event",
					"message_id", message.ID,
					"event_kind", string(event.Kind),
					"user_id", event.UserID,
					"error", err,
				)
				metrics.RecordIdentityEvent(string(event.Kind), statusFailed)
				// Not acknowledged, the message stays pending for redelivery
				continue
			}

			metrics.RecordIdentityEvent(string(event.Kind), statusProcessed)
			c.ack(ctx, message.ID)
		}
	}

	return nil
}

func (c *Consumer) ack(ctx context.Context, messageID string) {
	if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, messageID).Err(); err != nil {
		c.logger.Error("failed to acknowledge message",
			"message_id", messageID,
			"error", err,
		)
	}
}

// parseEvent converts a Redis Stream message to a domain identity event.
func (c *Consumer) parseEvent(message redis.XMessage) (domain.IdentityEvent, error) {
	event := domain.IdentityEvent{}

	if v, ok := message.Values["event_id"].(string); ok {
		event.ID = v
	}

	rawKind, _ := message.Values["event_type"].(string)
	if rawKind == "" {
		return event, fmt.Errorf("message %s has no event_type", message.ID)
	}
	event.RawKind = rawKind
	event.Kind = domain.ParseEventKind(rawKind)

	if v, ok := message.Values["client_id"].(string); ok {
		event.ClientID = v
	}
	if v, ok := message.Values["user_id"].(string); ok {
		event.UserID = v
	}
	if v, ok := message.Values["source"].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values["occurred_at"].(string); ok {
		event.OccurredAt, _ = time.Parse(time.RFC3339, v)
	}

	if v, ok := message.Values["session"].(string); ok && v != "" && v != "null" {
		var session domain.Session
		if err := json.Unmarshal([]byte(v), &session); err != nil {
			return event, fmt.Errorf("message %s carries an invalid session payload: %w", message.ID, err)
		}
		event.Session = &session
	}

	if event.UserID == "" {
		event.UserID = event.Session.UserID()
	}

	if err := event.Validate(); err != nil {
		return event, fmt.Errorf("message %s is not a valid identity event: %w", message.ID, err)
	}

	return event, nil
}
