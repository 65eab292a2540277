package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type ReviewEventPublisherInterface interface {
	PublishReviewCreated(ctx context.Context, event ReviewCreatedEvent) error
}

// AMQPPublisher publishes persistent messages to the review.created queue.
// The connection is shared; a channel is opened lazily and reopened after
// broker hiccups.
type AMQPPublisher struct {
	url    string
	logger *zap.SugaredLogger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string, logger *zap.SugaredLogger) *AMQPPublisher {
	return &AMQPPublisher{url: url, logger: logger}
}

func (p *AMQPPublisher) PublishReviewCreated(ctx context.Context, event ReviewCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.logger.Errorw("rabbitmq: channel unavailable", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", ReviewCreatedQueue, false, false, pub); err != nil {
		// Drop the cached channel so the next publish reconnects.
		p.reset()
		p.logger.Errorw("rabbitmq: publish failed", "error", err)
		return err
	}
	return nil
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("channel open: %w", err)
	}

	if _, err := ch.QueueDeclare(ReviewCreatedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}

	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
}

func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
