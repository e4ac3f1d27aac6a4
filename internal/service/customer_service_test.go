package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

type fixture struct {
	journal  *memory.Journal
	records  *memory.CustomerStore
	photos   *memory.PhotoStore
	queue    *memory.AuditQueue
	archive  *memory.FileArchive
	audit    *service.AuditLogService
	customer *service.CustomerService
}

// sequentialIDs returns id-1, id-2, ... so tests can predict generated keys
func sequentialIDs() service.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	journal := &memory.Journal{}
	f := &fixture{
		journal: journal,
		records: memory.NewCustomerStore(journal),
		photos:  memory.NewPhotoStore(journal),
		queue:   memory.NewAuditQueue(journal),
		archive: memory.NewFileArchive(journal),
	}
	f.queue.Now = func() time.Time { return fixedNow }
	logger := zap.NewNop()
	f.audit = service.NewAuditLogService(f.queue, f.archive, func() time.Time { return fixedNow }, logger)
	f.customer = service.NewCustomerService(f.records, f.photos, f.audit, sequentialIDs(), logger)
	return f
}

func annLee() *domain.CustomerForm {
	return &domain.CustomerForm{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "a@x.com",
		PhoneNumber: "555-1111",
	}
}

func decodeAudit(t *testing.T, text string) domain.AuditMessage {
	t.Helper()
	var msg domain.AuditMessage
	require.NoError(t, json.Unmarshal([]byte(text), &msg))
	return msg
}

func TestCustomerService_Create_WithoutImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.customer.Create(ctx, annLee(), nil)
	require.NoError(t, err)
	calls := f.journal.Entries()

	assert.Equal(t, domain.CustomerPartitionKey, customer.PartitionKey)
	assert.Equal(t, "id-1", customer.RowKey)
	assert.Equal(t, "id-2", customer.CustomerID)
	assert.Empty(t, customer.PhotoURL)

	stored, err := f.records.Get(ctx, "customer", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.FirstName)
	assert.Equal(t, "Lee", stored.LastName)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "555-1111", stored.PhoneNumber)
	assert.Empty(t, stored.PhotoURL)

	messages, err := f.queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	audit := decodeAudit(t, messages[0].MessageText)
	assert.Equal(t, domain.AuditActionCustomerCreated, audit.Action)
	assert.Equal(t, "New Product Added", string(audit.Action))
	assert.True(t, audit.TimeStamp.Equal(fixedNow))
	assert.Equal(t, "customer", audit.Details.PartitionKey)
	assert.Equal(t, "id-1", audit.Details.RowKey)
	assert.Equal(t, "Ann", audit.Details.FirstName)

	assert.Zero(t, f.photos.Count())
	assert.Equal(t, []string{"records.Insert", "queue.Send"}, calls)
}

func TestCustomerService_Create_WithImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.customer.Create(ctx, annLee(), strings.NewReader("png-bytes"))
	require.NoError(t, err)
	calls := f.journal.Entries()

	// Row key and customer id are generated before the photo name
	assert.Equal(t, memory.PhotoURLPrefix+"id-3", customer.PhotoURL)
	body, ok := f.photos.Photo("id-3")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(body))

	stored, err := f.records.Get(ctx, customer.PartitionKey, customer.RowKey)
	require.NoError(t, err)
	assert.Equal(t, customer.PhotoURL, stored.PhotoURL)

	assert.Equal(t, []string{"photos.Upload", "records.Insert", "queue.Send"}, calls)
}

func TestCustomerService_Create_FreshIdentityPerRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		customer, err := f.customer.Create(ctx, annLee(), nil)
		require.NoError(t, err)
		assert.Equal(t, domain.CustomerPartitionKey, customer.PartitionKey)
		assert.False(t, seen[customer.RowKey], "row key reused")
		assert.False(t, seen[customer.CustomerID], "customer id reused")
		seen[customer.RowKey] = true
		seen[customer.CustomerID] = true
	}

	customers, err := f.customer.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 5)
}

func TestCustomerService_Create_DefaultIDGeneratorUsesUUIDs(t *testing.T) {
	f := newFixture(t)
	svc := service.NewCustomerService(f.records, f.photos, f.audit, nil, zap.NewNop())

	customer, err := svc.Create(context.Background(), annLee(), nil)
	require.NoError(t, err)
	assert.Len(t, customer.RowKey, 36)
	assert.Len(t, customer.CustomerID, 36)
	assert.NotEqual(t, customer.RowKey, customer.CustomerID)
}

func TestCustomerService_Create_QueueFailureKeepsRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.queue.SetError(errors.New("queue unavailable"))

	customer, err := f.customer.Create(ctx, annLee(), nil)
	require.NoError(t, err)

	_, err = f.records.Get(ctx, customer.PartitionKey, customer.RowKey)
	assert.NoError(t, err)
}

func TestCustomerService_Create_InsertFailure(t *testing.T) {
	f := newFixture(t)
	f.records.SetError(errors.New("table unavailable"))

	_, err := f.customer.Create(context.Background(), annLee(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create customer")
	assert.NotContains(t, f.journal.Entries(), "queue.Send")
}

func TestCustomerService_Create_PhotoFailureSkipsInsert(t *testing.T) {
	f := newFixture(t)
	f.photos.SetError(errors.New("blob unavailable"))

	_, err := f.customer.Create(context.Background(), annLee(), strings.NewReader("img"))
	require.Error(t, err)
	assert.Equal(t, []string{"photos.Upload"}, f.journal.Entries())
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.customer.Get(context.Background(), "customer", "missing")
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCustomerService_Get_StoreFailureIsNotNotFound(t *testing.T) {
	f := newFixture(t)
	f.records.SetError(errors.New("boom"))

	_, err := f.customer.Get(context.Background(), "customer", "id-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCustomerService_Update_ChangesPhoneOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), strings.NewReader("img"))
	require.NoError(t, err)

	form := domain.FormFromCustomer(created)
	form.PhoneNumber = "555-2222"
	updated, err := f.customer.Update(ctx, &form, nil)
	require.NoError(t, err)

	assert.Equal(t, "555-2222", updated.PhoneNumber)
	assert.Equal(t, created.PhotoURL, updated.PhotoURL)
	assert.Equal(t, created.CustomerID, updated.CustomerID)

	stored, err := f.records.Get(ctx, created.PartitionKey, created.RowKey)
	require.NoError(t, err)
	assert.Equal(t, "555-2222", stored.PhoneNumber)
	assert.Equal(t, created.PhotoURL, stored.PhotoURL)

	messages, err := f.queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	audit := decodeAudit(t, messages[1].MessageText)
	assert.Equal(t, domain.AuditActionCustomerUpdated, audit.Action)
	assert.Equal(t, "555-2222", audit.Details.PhoneNumber)
}

func TestCustomerService_Update_NewImageReplacesPhotoURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), strings.NewReader("old"))
	require.NoError(t, err)

	form := domain.FormFromCustomer(created)
	updated, err := f.customer.Update(ctx, &form, strings.NewReader("new"))
	require.NoError(t, err)

	assert.NotEqual(t, created.PhotoURL, updated.PhotoURL)
	assert.Equal(t, memory.PhotoURLPrefix+"id-4", updated.PhotoURL)

	stored, err := f.records.Get(ctx, created.PartitionKey, created.RowKey)
	require.NoError(t, err)
	assert.Equal(t, updated.PhotoURL, stored.PhotoURL)
}

func TestCustomerService_Update_IgnoresKeysAndIDFromForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), nil)
	require.NoError(t, err)

	form := domain.FormFromCustomer(created)
	form.FirstName = "Anne"
	_, err = f.customer.Update(ctx, &form, nil)
	require.NoError(t, err)

	customers, err := f.customer.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, created.RowKey, customers[0].RowKey)
	assert.Equal(t, created.CustomerID, customers[0].CustomerID)
	assert.Equal(t, "Anne", customers[0].FirstName)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	form := domain.EditCustomerForm{PartitionKey: "customer", RowKey: "missing", CustomerForm: *annLee()}
	_, err := f.customer.Update(context.Background(), &form, nil)
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	assert.Equal(t, []string{"records.Get"}, f.journal.Entries())
}

func TestCustomerService_Delete_WithoutPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), nil)
	require.NoError(t, err)
	form := domain.FormFromCustomer(created)
	form.PhoneNumber = "555-2222"
	_, err = f.customer.Update(ctx, &form, nil)
	require.NoError(t, err)

	before := len(f.journal.Entries())
	require.NoError(t, f.customer.Delete(ctx, created.PartitionKey, created.RowKey))

	assert.Equal(t, []string{"records.Get", "records.Delete", "queue.Send"}, f.journal.Entries()[before:])

	_, err = f.records.Get(ctx, created.PartitionKey, created.RowKey)
	assert.Error(t, err)

	messages, err := f.queue.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	audit := decodeAudit(t, messages[2].MessageText)
	assert.Equal(t, domain.AuditActionCustomerDeleted, audit.Action)
	assert.Equal(t, "555-2222", audit.Details.PhoneNumber)
}

func TestCustomerService_Delete_PhotoDeletedBeforeRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), strings.NewReader("img"))
	require.NoError(t, err)
	require.Equal(t, 1, f.photos.Count())

	before := len(f.journal.Entries())
	require.NoError(t, f.customer.Delete(ctx, created.PartitionKey, created.RowKey))

	assert.Equal(t, []string{"records.Get", "photos.Delete", "records.Delete", "queue.Send"}, f.journal.Entries()[before:])
	assert.Zero(t, f.photos.Count())
}

func TestCustomerService_Delete_PhotoFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customer.Create(ctx, annLee(), strings.NewReader("img"))
	require.NoError(t, err)
	f.photos.SetError(errors.New("blob unavailable"))

	require.NoError(t, f.customer.Delete(ctx, created.PartitionKey, created.RowKey))

	_, err = f.records.Get(ctx, created.PartitionKey, created.RowKey)
	assert.Error(t, err)
}

func TestCustomerService_Delete_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.customer.Delete(context.Background(), "customer", "missing")
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	assert.Equal(t, []string{"records.Get"}, f.journal.Entries())
}
