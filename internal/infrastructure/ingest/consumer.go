// Package ingest consumes offer and payment events from Redis Streams and
// appends them to the record store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/monitor/internal/infrastructure/metrics"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// PayloadField is the stream message field holding the JSON payload.
const PayloadField = "payload"

// ErrMalformedMessage marks a message that can never be stored. Such messages
// are acknowledged and dropped instead of redelivered.
var ErrMalformedMessage = errors.New("malformed message")

// MessageHandler processes the payload of one stream message.
type MessageHandler interface {
	Handle(ctx context.Context, payload []byte) error
}

// ConsumerConfig holds the stream consumer settings.
type ConsumerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	BatchSize int64
	Block     time.Duration
	// ClaimIdle is how long a pending message must sit unacknowledged before
	// it is claimed and retried.
	ClaimIdle time.Duration
}

// StreamConsumer reads a Redis stream through a consumer group.
type StreamConsumer struct {
	client  *redis.Client
	config  ConsumerConfig
	handler MessageHandler
	logger  logger.Interface
}

// NewStreamConsumer creates a consumer. An empty consumer name falls back to
// the hostname so a restarted process resumes its own pending entries.
func NewStreamConsumer(client *redis.Client, config ConsumerConfig, handler MessageHandler, logger logger.Interface) *StreamConsumer {
	if config.Consumer == "" {
		config.Consumer = defaultConsumerName()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	return &StreamConsumer{
		client:  client,
		config:  config,
		handler: handler,
		logger:  logger.With("stream", config.Stream, "consumer", config.Consumer),
	}
}

// EnsureGroup creates the consumer group and the stream if missing.
func (c *StreamConsumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.Stream, c.config.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s on %s: %w", c.config.Group, c.config.Stream, err)
	}
	return nil
}

// Run consumes until ctx is cancelled.
func (c *StreamConsumer) Run(ctx context.Context) error {
	if err := c.EnsureGroup(ctx); err != nil {
		return err
	}

	c.logger.Infow("stream consumer started", "group", c.config.Group)

	for {
		if ctx.Err() != nil {
			c.logger.Infow("stream consumer stopped")
			return nil
		}

		if _, err := c.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Errorw("failed to read stream", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

// ProcessBatch retries pending messages idle for at least ClaimIdle, then
// reads at most one batch of new messages. It returns the number of
// acknowledged messages.
func (c *StreamConsumer) ProcessBatch(ctx context.Context) (int, error) {
	claimed, _, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   c.config.Stream,
		Group:    c.config.Group,
		Consumer: c.config.Consumer,
		MinIdle:  c.config.ClaimIdle,
		Start:    "0-0",
		Count:    c.config.BatchSize,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to claim pending messages: %w", err)
	}
	acked := c.handleMessages(ctx, claimed)
	if len(claimed) > 0 {
		return acked, nil
	}

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.Group,
		Consumer: c.config.Consumer,
		Streams:  []string{c.config.Stream, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return acked, nil
	}
	if err != nil {
		return acked, err
	}

	for _, stream := range streams {
		acked += c.handleMessages(ctx, stream.Messages)
	}
	return acked, nil
}

func (c *StreamConsumer) handleMessages(ctx context.Context, messages []redis.XMessage) int {
	acked := 0
	for _, message := range messages {
		if !c.handleMessage(ctx, message) {
			continue
		}
		if err := c.client.XAck(ctx, c.config.Stream, c.config.Group, message.ID).Err(); err != nil {
			c.logger.Errorw("failed to acknowledge message", "message_id", message.ID, "error", err)
			continue
		}
		acked++
	}
	return acked
}

// handleMessage reports whether the message should be acknowledged.
func (c *StreamConsumer) handleMessage(ctx context.Context, message redis.XMessage) bool {
	payload, ok := message.Values[PayloadField].(string)
	if !ok {
		c.logger.Warnw("dropping message without payload", "message_id", message.ID)
		metrics.RecordIngest(c.config.Stream, metrics.OutcomeMalformed)
		return true
	}

	err := c.handler.Handle(ctx, []byte(payload))
	switch {
	case err == nil:
		metrics.RecordIngest(c.config.Stream, metrics.OutcomeStored)
		return true
	case errors.Is(err, ErrMalformedMessage):
		c.logger.Warnw("dropping malformed message", "message_id", message.ID, "error", err)
		metrics.RecordIngest(c.config.Stream, metrics.OutcomeMalformed)
		return true
	default:
		// left pending for redelivery
		c.logger.Errorw("failed to store message", "message_id", message.ID, "error", err)
		metrics.RecordIngest(c.config.Stream, metrics.OutcomeFailed)
		return false
	}
}

func defaultConsumerName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return "monitor-" + host
	}
	return "monitor-" + uuid.NewString()
}
