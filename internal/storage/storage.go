// Package storage defines the four storage collaborators used by the customer
// service and their Azure, S3 and filesystem implementations.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// CustomerStore persists customer records keyed by (partition, row)
type CustomerStore interface {
	Get(ctx context.Context, partitionKey, rowKey string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Insert(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, partitionKey, rowKey string) error
}

// PhotoStore stores customer photos and hands back a URL that can be rendered
type PhotoStore interface {
	Upload(ctx context.Context, id string, data io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// AuditQueue is an append-only queue of audit messages
type AuditQueue interface {
	Send(ctx context.Context, message string) error
	List(ctx context.Context) ([]domain.LogMessage, error)
}

// FileArchive stores exported files by name
type FileArchive interface {
	UploadFile(ctx context.Context, name string, data io.Reader) error
}

// Pinger is implemented by collaborators that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
