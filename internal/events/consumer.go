package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BatchReport summarizes one orchestrator invocation for observability.
type BatchReport struct {
	Total     int `json:"total_records"`
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
	Skipped   int `json:"skipped"`
}

// BatchHandler is implemented by the enrichment orchestrator. A handler must
// isolate per-event failures; the consumer acks deliveries regardless of the
// report because failures are recorded on the review rows themselves.
type BatchHandler interface {
	ProcessBatch(ctx context.Context, batch []ReviewCreatedEvent) BatchReport
}

// Consumer drains the review.created queue and hands decoded events to the
// handler. It runs a reconnect loop with exponential backoff until the
// context is cancelled.
type Consumer struct {
	url     string
	handler BatchHandler
	logger  *zap.SugaredLogger
}

func NewConsumer(url string, handler BatchHandler, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{url: url, handler: handler, logger: logger}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warnw("review-consumer: dial failed", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.logger.Warnw("review-consumer: consume loop ended", "error", err)
		}
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warnw("review-consumer: set QoS failed", "error", err)
	}

	if _, err := ch.QueueDeclare(ReviewCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ReviewCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			var event ReviewCreatedEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				c.logger.Errorw("review-consumer: undecodable message", "error", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}

			report := c.handler.ProcessBatch(ctx, []ReviewCreatedEvent{event})
			c.logger.Infow("review-consumer: batch done",
				"total", report.Total,
				"processed", report.Processed,
				"errors", report.Errors,
				"skipped", report.Skipped,
			)
			_ = d.Ack(false)
		}
	}
}
