package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
	dialAttempts   = 5
)

// AMQPPublisher publishes expense events to a durable topic exchange,
// routed by event type. A single channel is shared behind a mutex.
type AMQPPublisher struct {
	url          string
	exchangeName string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQPPublisher connects to the broker and declares the exchange.
func NewAMQPPublisher(url, exchangeName string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		url:          url,
		exchangeName: exchangeName,
	}

	var err error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		if err = p.connect(); err == nil {
			return p, nil
		}
		if !isConnectionError(err) {
			break
		}
		wait := exponentialBackoff(attempt)
		slog.Warn("AMQP connection failed, retrying", "attempt", attempt+1, "wait", wait, "error", err)
		time.Sleep(wait)
	}
	return nil, err
}

// connect must be called with mu held or before the publisher is shared.
func (p *AMQPPublisher) connect() error {
	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		p.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// Publish sends the event with its type as routing key. A closed channel
// is reopened once before giving up.
func (p *AMQPPublisher) Publish(ctx context.Context, event adapter.ExpenseEvent) error {
	body, err := NewExpenseEventMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.closeLocked()
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect AMQP: %w", err)
		}
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,     // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ExpenseID.String(),
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		if isConnectionError(err) {
			p.closeLocked()
		}
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published expense event",
		"type", event.Type,
		"expense_id", event.ExpenseID,
		"exchange", p.exchangeName,
	)

	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() error {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		if err != nil && !strings.Contains(err.Error(), "closed") {
			return err
		}
	}
	return nil
}

// NoopPublisher drops events. It stands in when no broker is configured.
type NoopPublisher struct{}

// Publish implements adapter.EventPublisher.
func (NoopPublisher) Publish(ctx context.Context, event adapter.ExpenseEvent) error {
	return nil
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return maxBackoff
	}
	wait := time.Second << attempt
	if wait > maxBackoff {
		return maxBackoff
	}
	return wait
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection", "eof", "broken pipe", "channel/connection is not open"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

var (
	_ adapter.EventPublisher = (*AMQPPublisher)(nil)
	_ adapter.EventPublisher = NoopPublisher{}
)
