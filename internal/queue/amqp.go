// Package queue implements the audit queue on RabbitMQ
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPAuditQueue implements storage.AuditQueue on a durable RabbitMQ queue.
// List reads messages with basic.get and requeues them, so reading never
// consumes the log.
type AMQPAuditQueue struct {
	conn      *amqp.Connection
	queueName string
	limit     int
	logger    *zap.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPAuditQueue dials the broker and declares the queue
func NewAMQPAuditQueue(url, queueName string, limit int, logger *zap.Logger) (*AMQPAuditQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	if limit <= 0 {
		limit = 32
	}

	logger.Info("RabbitMQ audit queue initialized",
		zap.String("queue", queueName),
		zap.Int("list_limit", limit),
	)

	return &AMQPAuditQueue{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		limit:     limit,
		logger:    logger,
	}, nil
}

// Send publishes a persistent message to the queue
func (q *AMQPAuditQueue) Send(ctx context.Context, message string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.ch.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Body:         []byte(message),
		})
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	return nil
}

// List returns up to the configured number of messages from the head of the
// queue. Every fetched message is requeued before returning.
func (q *AMQPAuditQueue) List(ctx context.Context) ([]domain.LogMessage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	messages := []domain.LogMessage{}
	var lastTag uint64
	for len(messages) < q.limit {
		if err := ctx.Err(); err != nil {
			q.requeue(lastTag)
			return nil, err
		}
		d, ok, err := q.ch.Get(q.queueName, false)
		if err != nil {
			q.requeue(lastTag)
			return nil, fmt.Errorf("failed to get message: %w", err)
		}
		if !ok {
			break
		}
		lastTag = d.DeliveryTag
		messages = append(messages, domain.LogMessage{
			MessageID:     d.MessageId,
			InsertionTime: d.Timestamp.UTC(),
			MessageText:   string(d.Body),
		})
	}

	if err := q.requeue(lastTag); err != nil {
		return nil, err
	}
	return messages, nil
}

func (q *AMQPAuditQueue) requeue(lastTag uint64) error {
	if lastTag == 0 {
		return nil
	}
	if err := q.ch.Nack(lastTag, true, true); err != nil {
		q.logger.Error("Failed to requeue audit messages", zap.Error(err))
		return fmt.Errorf("failed to requeue messages: %w", err)
	}
	return nil
}

// Ping opens and closes a channel to check the connection
func (q *AMQPAuditQueue) Ping(ctx context.Context) error {
	ch, err := q.conn.Channel()
	if err != nil {
		return err
	}
	return ch.Close()
}

// Close closes the channel and the connection
func (q *AMQPAuditQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ch.Close()
	return q.conn.Close()
}
