// Package memory provides in-process implementations of the storage
// collaborators. They back the "memory" backend and the service tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
)

// PhotoURLPrefix prefixes every URL handed out by PhotoStore
const PhotoURLPrefix = "memory://photos/"

// Journal records the order of collaborator calls across stores
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) record(entry string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of the recorded calls, e.g. "photos.Upload"
func (j *Journal) Entries() []string {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type failer struct {
	mu  sync.Mutex
	err error
}

// SetError makes every subsequent call fail with err; nil clears it
func (f *failer) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *failer) failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// CustomerStore keeps customers in a map keyed by partition and row key
type CustomerStore struct {
	failer
	journal *Journal

	mu        sync.RWMutex
	customers map[string]domain.Customer
	order     []string
}

// NewCustomerStore creates an empty store; journal may be nil
func NewCustomerStore(journal *Journal) *CustomerStore {
	return &CustomerStore{journal: journal, customers: map[string]domain.Customer{}}
}

func key(partitionKey, rowKey string) string {
	return partitionKey + "\x00" + rowKey
}

func (s *CustomerStore) Get(ctx context.Context, partitionKey, rowKey string) (*domain.Customer, error) {
	s.journal.record("records.Get")
	if err := s.failure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[key(partitionKey, rowKey)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

// List returns customers in insertion order
func (s *CustomerStore) List(ctx context.Context) ([]domain.Customer, error) {
	s.journal.record("records.List")
	if err := s.failure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.customers[k])
	}
	return out, nil
}

func (s *CustomerStore) Insert(ctx context.Context, customer *domain.Customer) error {
	s.journal.record("records.Insert")
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(customer.PartitionKey, customer.RowKey)
	if _, exists := s.customers[k]; exists {
		return fmt.Errorf("customer %s/%s already exists", customer.PartitionKey, customer.RowKey)
	}
	s.customers[k] = *customer
	s.order = append(s.order, k)
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	s.journal.record("records.Update")
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(customer.PartitionKey, customer.RowKey)
	if _, exists := s.customers[k]; !exists {
		return storage.ErrNotFound
	}
	s.customers[k] = *customer
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	s.journal.record("records.Delete")
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(partitionKey, rowKey)
	if _, exists := s.customers[k]; !exists {
		return storage.ErrNotFound
	}
	delete(s.customers, k)
	for i, existing := range s.order {
		if existing == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping always succeeds unless an error has been set
func (s *CustomerStore) Ping(ctx context.Context) error {
	return s.failure()
}

// PhotoStore keeps uploaded photos as byte slices
type PhotoStore struct {
	failer
	journal *Journal

	mu     sync.RWMutex
	photos map[string][]byte
}

func NewPhotoStore(journal *Journal) *PhotoStore {
	return &PhotoStore{journal: journal, photos: map[string][]byte{}}
}

func (p *PhotoStore) Upload(ctx context.Context, id string, data io.Reader) (string, error) {
	p.journal.record("photos.Upload")
	if err := p.failure(); err != nil {
		return "", err
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photos[id] = body
	return PhotoURLPrefix + id, nil
}

func (p *PhotoStore) Delete(ctx context.Context, url string) error {
	p.journal.record("photos.Delete")
	if err := p.failure(); err != nil {
		return err
	}
	if !strings.HasPrefix(url, PhotoURLPrefix) {
		return fmt.Errorf("photo url %q is not managed by this store", url)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.photos, strings.TrimPrefix(url, PhotoURLPrefix))
	return nil
}

// Photo returns the stored bytes for id
func (p *PhotoStore) Photo(id string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	body, ok := p.photos[id]
	return body, ok
}

// Count returns the number of stored photos
func (p *PhotoStore) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.photos)
}

// AuditQueue is a FIFO of audit messages; List never removes anything
type AuditQueue struct {
	failer
	journal *Journal
	// Now stamps insertion times; defaults to time.Now
	Now func() time.Time

	mu       sync.RWMutex
	messages []domain.LogMessage
	nextID   int
}

func NewAuditQueue(journal *Journal) *AuditQueue {
	return &AuditQueue{journal: journal, Now: time.Now}
}

func (q *AuditQueue) Send(ctx context.Context, message string) error {
	q.journal.record("queue.Send")
	if err := q.failure(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.messages = append(q.messages, domain.LogMessage{
		MessageID:     "msg-" + strconv.Itoa(q.nextID),
		InsertionTime: q.Now().UTC(),
		MessageText:   message,
	})
	return nil
}

func (q *AuditQueue) List(ctx context.Context) ([]domain.LogMessage, error) {
	q.journal.record("queue.List")
	if err := q.failure(); err != nil {
		return nil, err
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]domain.LogMessage{}, q.messages...), nil
}

// FileArchive keeps uploaded files by name
type FileArchive struct {
	failer
	journal *Journal

	mu    sync.RWMutex
	files map[string][]byte
}

func NewFileArchive(journal *Journal) *FileArchive {
	return &FileArchive{journal: journal, files: map[string][]byte{}}
}

func (a *FileArchive) UploadFile(ctx context.Context, name string, data io.Reader) error {
	a.journal.record("archive.UploadFile")
	if err := a.failure(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files[name] = buf.Bytes()
	return nil
}

// File returns the contents of an archived file
func (a *FileArchive) File(name string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	body, ok := a.files[name]
	return body, ok
}

// Names lists archived file names in sorted order
func (a *FileArchive) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.files))
	for name := range a.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	_ storage.CustomerStore = (*CustomerStore)(nil)
	_ storage.PhotoStore    = (*PhotoStore)(nil)
	_ storage.AuditQueue    = (*AuditQueue)(nil)
	_ storage.FileArchive   = (*FileArchive)(nil)
	_ storage.Pinger        = (*CustomerStore)(nil)
)
