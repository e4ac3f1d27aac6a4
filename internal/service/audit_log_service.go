package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"go.uber.org/zap"
)

const (
	// CSVHeader is the first line of every exported log file
	CSVHeader = "MessageId, InsertionTime, MessageText"

	csvTimeLayout  = "2006/01/02 15:04:05"
	exportFileTime = "200601150405"
)

// AuditResult reports the outcome of a best-effort audit send
type AuditResult struct {
	Action  domain.AuditAction
	Message string
	Err     error
}

// OK reports whether the message reached the queue
func (r AuditResult) OK() bool {
	return r.Err == nil
}

// ExportResult describes a finished log export. Err holds the archive upload
// error, if any; the export itself is still considered done.
type ExportResult struct {
	FileName string
	Rows     int
	Bytes    int
	Err      error
}

// AuditLogService writes audit messages to the queue and exports them to the archive
type AuditLogService struct {
	queue   storage.AuditQueue
	archive storage.FileArchive
	now     func() time.Time
	logger  *zap.Logger
}

// NewAuditLogService creates the service. A nil now uses time.Now.
func NewAuditLogService(queue storage.AuditQueue, archive storage.FileArchive, now func() time.Time, logger *zap.Logger) *AuditLogService {
	if now == nil {
		now = time.Now
	}
	return &AuditLogService{
		queue:   queue,
		archive: archive,
		now:     now,
		logger:  logger,
	}
}

// Record sends an audit message for a customer change. Failures are logged and
// returned in the result, never as an error.
func (s *AuditLogService) Record(ctx context.Context, action domain.AuditAction, customer *domain.Customer) AuditResult {
	result := AuditResult{Action: action}

	body, err := json.Marshal(domain.AuditMessage{
		Action:    action,
		TimeStamp: s.now().UTC(),
		Details:   domain.NewAuditDetails(customer),
	})
	if err != nil {
		result.Err = fmt.Errorf("failed to encode audit message: %w", err)
	} else {
		result.Message = string(body)
		if err := s.queue.Send(ctx, result.Message); err != nil {
			result.Err = fmt.Errorf("failed to send audit message: %w", err)
		}
	}

	if result.Err != nil {
		s.logger.Warn("Audit message not recorded",
			zap.String("action", string(action)),
			zap.String("partition_key", customer.PartitionKey),
			zap.String("row_key", customer.RowKey),
			zap.Error(result.Err),
		)
	}
	return result
}

// List returns the queued audit messages in queue order
func (s *AuditLogService) List(ctx context.Context) ([]domain.LogMessage, error) {
	messages, err := s.queue.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit messages: %w", err)
	}
	return messages, nil
}

// ExportLog writes every queued message to a CSV file in the archive. Only a
// failure to read the queue is returned as an error.
func (s *AuditLogService) ExportLog(ctx context.Context) (*ExportResult, error) {
	messages, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	csv := BuildCSV(messages)
	result := &ExportResult{
		FileName: ExportFileName(s.now()),
		Rows:     len(messages),
		Bytes:    len(csv),
	}

	if err := s.archive.UploadFile(ctx, result.FileName, bytes.NewReader(csv)); err != nil {
		result.Err = fmt.Errorf("failed to upload log file: %w", err)
		s.logger.Warn("Log export not archived",
			zap.String("file", result.FileName),
			zap.Error(err),
		)
		return result, nil
	}

	s.logger.Info("Log exported",
		zap.String("file", result.FileName),
		zap.Int("rows", result.Rows),
		zap.Int("bytes", result.Bytes),
	)
	return result, nil
}

// BuildCSV renders messages as the export document: a header line followed by
// one line per message, every field quoted and separated by ", ".
func BuildCSV(messages []domain.LogMessage) []byte {
	var buf bytes.Buffer
	buf.WriteString(CSVHeader)
	buf.WriteByte('\n')
	for _, m := range messages {
		fmt.Fprintf(&buf, "%s, %s, %s\n",
			quote(m.MessageID),
			quote(m.InsertionTime.UTC().Format(csvTimeLayout)),
			quote(m.MessageText),
		)
	}
	return buf.Bytes()
}

// ExportFileName names an export file after t in UTC. The layout has no day field.
func ExportFileName(t time.Time) string {
	return "Log_" + t.UTC().Format(exportFileTime) + ".csv"
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
