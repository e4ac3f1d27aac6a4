package storage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"go.uber.org/zap"
)

// maxPeekMessages is the service limit for a single peek
const maxPeekMessages = 32

// AzureAuditQueue implements AuditQueue on Azure Queue Storage
type AzureAuditQueue struct {
	client    *azqueue.QueueClient
	queueName string
	peekLimit int32
	logger    *zap.Logger
}

// NewAzureAuditQueue connects to the queue and creates it if needed. List
// peeks at most peekLimit messages (capped at the service limit of 32) and
// leaves them visible to other consumers.
func NewAzureAuditQueue(ctx context.Context, account AzureAccount, queueName string, peekLimit int, logger *zap.Logger) (*AzureAuditQueue, error) {
	client, err := newQueueClient(account, queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue client: %w", err)
	}

	if _, err := client.Create(ctx, nil); err != nil && !hasErrorCode(err, "QueueAlreadyExists") {
		return nil, fmt.Errorf("failed to create queue: %w", err)
	}

	if peekLimit <= 0 || peekLimit > maxPeekMessages {
		peekLimit = maxPeekMessages
	}

	logger.Info("Azure Queue Storage initialized",
		zap.String("queue", queueName),
		zap.Int("peek_limit", peekLimit),
	)

	return &AzureAuditQueue{
		client:    client,
		queueName: queueName,
		peekLimit: int32(peekLimit),
		logger:    logger,
	}, nil
}

func newQueueClient(account AzureAccount, queueName string) (*azqueue.QueueClient, error) {
	if account.useConnectionString() {
		return azqueue.NewQueueClientFromConnectionString(account.ConnectionString, queueName, nil)
	}
	url, err := account.serviceURL("queue")
	if err != nil {
		return nil, err
	}
	cred, err := account.credential()
	if err != nil {
		return nil, err
	}
	return azqueue.NewQueueClient(url+queueName, cred, nil)
}

// Send enqueues a message
func (q *AzureAuditQueue) Send(ctx context.Context, message string) error {
	if _, err := q.client.EnqueueMessage(ctx, message, nil); err != nil {
		return fmt.Errorf("failed to enqueue message: %w", err)
	}
	return nil
}

// List peeks the messages at the front of the queue without dequeuing them
func (q *AzureAuditQueue) List(ctx context.Context) ([]domain.LogMessage, error) {
	resp, err := q.client.PeekMessages(ctx, &azqueue.PeekMessagesOptions{
		NumberOfMessages: to.Ptr(q.peekLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to peek messages: %w", err)
	}

	messages := make([]domain.LogMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		if m == nil {
			continue
		}
		msg := domain.LogMessage{
			MessageID:   deref(m.MessageID),
			MessageText: deref(m.MessageText),
		}
		if m.InsertionTime != nil {
			msg.InsertionTime = m.InsertionTime.UTC()
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
