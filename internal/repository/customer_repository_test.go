package repository_test

import (
	"context"
	"testing"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/database"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/repository"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *repository.CustomerRepository {
	t.Helper()
	db, err := database.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewCustomerRepository(db)
}

func createCustomer(t *testing.T, repo *repository.CustomerRepository, rowKey, first, last string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		PartitionKey: domain.CustomerPartitionKey,
		RowKey:       rowKey,
		CustomerID:   "cid-" + rowKey,
		FirstName:    first,
		LastName:     last,
		Email:        first + "@x.com",
		PhoneNumber:  "555-1111",
	}
	require.NoError(t, repo.Insert(context.Background(), customer))
	return customer
}

func TestCustomerRepository_InsertAndGet(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created := createCustomer(t, repo, "r1", "Ann", "Lee")

	got, err := repo.Get(ctx, created.PartitionKey, created.RowKey)
	require.NoError(t, err)
	assert.Equal(t, "cid-r1", got.CustomerID)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Empty(t, got.PhotoURL)
}

func TestCustomerRepository_InsertDuplicateFails(t *testing.T) {
	repo := setupRepository(t)
	created := createCustomer(t, repo, "r1", "Ann", "Lee")

	dup := *created
	assert.Error(t, repo.Insert(context.Background(), &dup))
}

func TestCustomerRepository_GetNotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.Get(context.Background(), "customer", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCustomerRepository_ListOrderedByName(t *testing.T) {
	repo := setupRepository(t)
	createCustomer(t, repo, "r1", "Zoe", "Lee")
	createCustomer(t, repo, "r2", "Ann", "Lee")
	createCustomer(t, repo, "r3", "Bob", "Adams")

	customers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "r3", customers[0].RowKey)
	assert.Equal(t, "r2", customers[1].RowKey)
	assert.Equal(t, "r1", customers[2].RowKey)
}

func TestCustomerRepository_ListEmpty(t *testing.T) {
	repo := setupRepository(t)

	customers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestCustomerRepository_Update(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	created := createCustomer(t, repo, "r1", "Ann", "Lee")
	created.PhotoURL = "/photos/p1"
	require.NoError(t, repo.Update(ctx, created))

	// clearing a column is written too
	created.PhoneNumber = "555-2222"
	created.PhotoURL = ""
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.Get(ctx, "customer", "r1")
	require.NoError(t, err)
	assert.Equal(t, "555-2222", got.PhoneNumber)
	assert.Empty(t, got.PhotoURL)
}

func TestCustomerRepository_UpdateNotFound(t *testing.T) {
	repo := setupRepository(t)

	err := repo.Update(context.Background(), &domain.Customer{PartitionKey: "customer", RowKey: "missing"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCustomerRepository_Delete(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	createCustomer(t, repo, "r1", "Ann", "Lee")
	createCustomer(t, repo, "r2", "Bob", "Lee")

	require.NoError(t, repo.Delete(ctx, "customer", "r1"))

	_, err := repo.Get(ctx, "customer", "r1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.Get(ctx, "customer", "r2")
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, "customer", "r1"), storage.ErrNotFound)
}

func TestCustomerRepository_Ping(t *testing.T) {
	repo := setupRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
