package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"go.uber.org/zap"
)

// AzureTableStore implements CustomerStore on Azure Table Storage
type AzureTableStore struct {
	client    *aztables.Client
	tableName string
	logger    *zap.Logger
}

// tableEntity is the wire shape of a customer entity. Property names are
// PascalCase so other clients of the same table can read them.
type tableEntity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	CustomerID   string `json:"CustomerId"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Email        string `json:"Email"`
	PhoneNumber  string `json:"PhoneNumber"`
	PhotoURL     string `json:"PhotoUrl,omitempty"`
}

// NewAzureTableStore connects to the table and creates it if it does not exist
func NewAzureTableStore(ctx context.Context, account AzureAccount, tableName string, logger *zap.Logger) (*AzureTableStore, error) {
	service, err := newTableService(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create table client: %w", err)
	}

	client := service.NewClient(tableName)
	if _, err := client.CreateTable(ctx, nil); err != nil && !hasErrorCode(err, "TableAlreadyExists") {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	logger.Info("Azure Table Storage initialized", zap.String("table", tableName))

	return &AzureTableStore{client: client, tableName: tableName, logger: logger}, nil
}

func newTableService(account AzureAccount) (*aztables.ServiceClient, error) {
	if account.useConnectionString() {
		return aztables.NewServiceClientFromConnectionString(account.ConnectionString, nil)
	}
	url, err := account.serviceURL("table")
	if err != nil {
		return nil, err
	}
	cred, err := account.credential()
	if err != nil {
		return nil, err
	}
	return aztables.NewServiceClient(url, cred, nil)
}

// Get fetches one customer entity
func (s *AzureTableStore) Get(ctx context.Context, partitionKey, rowKey string) (*domain.Customer, error) {
	resp, err := s.client.GetEntity(ctx, partitionKey, rowKey, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return decodeEntity(resp.Value)
}

// List returns every customer in the table, following continuation tokens
func (s *AzureTableStore) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	pager := s.client.NewListEntitiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list entities: %w", err)
		}
		for _, raw := range page.Entities {
			customer, err := decodeEntity(raw)
			if err != nil {
				return nil, err
			}
			customers = append(customers, *customer)
		}
	}
	return customers, nil
}

// Insert adds a new entity; it fails if the keys already exist
func (s *AzureTableStore) Insert(ctx context.Context, customer *domain.Customer) error {
	body, err := encodeEntity(customer)
	if err != nil {
		return err
	}
	if _, err := s.client.AddEntity(ctx, body, nil); err != nil {
		return fmt.Errorf("failed to add entity: %w", err)
	}
	return nil
}

// Update replaces the stored entity unconditionally (last write wins)
func (s *AzureTableStore) Update(ctx context.Context, customer *domain.Customer) error {
	body, err := encodeEntity(customer)
	if err != nil {
		return err
	}
	_, err = s.client.UpdateEntity(ctx, body, &aztables.UpdateEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	})
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// Delete removes an entity
func (s *AzureTableStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if _, err := s.client.DeleteEntity(ctx, partitionKey, rowKey, nil); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return nil
}

func encodeEntity(c *domain.Customer) ([]byte, error) {
	body, err := json.Marshal(tableEntity{
		PartitionKey: c.PartitionKey,
		RowKey:       c.RowKey,
		CustomerID:   c.CustomerID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		PhotoURL:     c.PhotoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	return body, nil
}

func decodeEntity(raw []byte) (*domain.Customer, error) {
	var e tableEntity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	return &domain.Customer{
		PartitionKey: e.PartitionKey,
		RowKey:       e.RowKey,
		CustomerID:   e.CustomerID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		PhoneNumber:  e.PhoneNumber,
		PhotoURL:     e.PhotoURL,
	}, nil
}
