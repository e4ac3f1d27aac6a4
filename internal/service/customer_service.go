package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/logger"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDGenerator returns a fresh unique token for row keys, customer ids and photo names
type IDGenerator func() string

// CustomerService runs the customer actions against the storage collaborators.
// Every step of an action runs in order; audit messages are sent after the
// record change and never undo it.
type CustomerService struct {
	records storage.CustomerStore
	photos  storage.PhotoStore
	audit   *AuditLogService
	newID   IDGenerator
	logger  *zap.Logger
}

// NewCustomerService creates the service. A nil newID falls back to random UUIDs.
func NewCustomerService(
	records storage.CustomerStore,
	photos storage.PhotoStore,
	audit *AuditLogService,
	newID IDGenerator,
	logger *zap.Logger,
) *CustomerService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &CustomerService{
		records: records,
		photos:  photos,
		audit:   audit,
		newID:   newID,
		logger:  logger,
	}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, partitionKey, rowKey string) (*domain.Customer, error) {
	customer, err := s.records.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// Create inserts a new customer. image may be nil.
func (s *CustomerService) Create(ctx context.Context, form *domain.CustomerForm, image io.Reader) (*domain.Customer, error) {
	customer := &domain.Customer{
		PartitionKey: domain.CustomerPartitionKey,
		RowKey:       s.newID(),
		CustomerID:   s.newID(),
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
	}

	if image != nil {
		url, err := s.photos.Upload(ctx, s.newID(), image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		customer.PhotoURL = url
	}

	if err := s.records.Insert(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("Customer created",
		zap.String("partition_key", customer.PartitionKey),
		zap.String("row_key", customer.RowKey),
		zap.Bool("has_photo", customer.HasPhoto()),
	)

	s.audit.Record(ctx, domain.AuditActionCustomerCreated, customer)
	return customer, nil
}

// Update copies the editable fields onto the stored record. When image is not
// nil it is uploaded and its URL replaces the photo URL in the same update.
func (s *CustomerService) Update(ctx context.Context, form *domain.EditCustomerForm, image io.Reader) (*domain.Customer, error) {
	customer, err := s.Get(ctx, form.PartitionKey, form.RowKey)
	if err != nil {
		return nil, err
	}

	customer.FirstName = form.FirstName
	customer.LastName = form.LastName
	customer.Email = form.Email
	customer.PhoneNumber = form.PhoneNumber

	if image != nil {
		url, err := s.photos.Upload(ctx, s.newID(), image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		customer.PhotoURL = url
	}

	if err := s.records.Update(ctx, customer); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logger.WithCustomer(s.logger, customer.PartitionKey, customer.RowKey).
		Info("Customer updated", zap.Bool("photo_replaced", image != nil))

	s.audit.Record(ctx, domain.AuditActionCustomerUpdated, customer)
	return customer, nil
}

// Delete removes the customer and, first, its photo. A failed photo delete is
// logged and does not stop the record delete.
func (s *CustomerService) Delete(ctx context.Context, partitionKey, rowKey string) error {
	customer, err := s.Get(ctx, partitionKey, rowKey)
	if err != nil {
		return err
	}
	log := logger.WithCustomer(s.logger, partitionKey, rowKey)

	if customer.HasPhoto() {
		if err := s.photos.Delete(ctx, customer.PhotoURL); err != nil {
			log.Warn("Failed to delete customer photo", zap.String("photo_url", customer.PhotoURL), zap.Error(err))
		}
	}

	if err := s.records.Delete(ctx, partitionKey, rowKey); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	log.Info("Customer deleted")

	s.audit.Record(ctx, domain.AuditActionCustomerDeleted, customer)
	return nil
}
