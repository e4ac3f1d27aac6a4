package repository

import (
	"context"
	"errors"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/database"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"gorm.io/gorm"
)

// CustomerRepository stores customers in a SQL database through gorm
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Get(ctx context.Context, partitionKey, rowKey string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).
		Where("partition_key = ? AND row_key = ?", partitionKey, rowKey).
		First(&customer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Find(&customers).Error
	return customers, err
}

// Insert fails if a customer with the same keys exists
func (r *CustomerRepository) Insert(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update replaces every column of an existing customer
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("partition_key = ? AND row_key = ?", customer.PartitionKey, customer.RowKey).
		Select("*").
		Updates(customer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, partitionKey, rowKey string) error {
	result := r.db.WithContext(ctx).
		Where("partition_key = ? AND row_key = ?", partitionKey, rowKey).
		Delete(&domain.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Ping checks that the database connection is alive
func (r *CustomerRepository) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, r.db)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}
