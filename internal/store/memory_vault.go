package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pass-locker/models"
)

// memoryVaultStore keeps records in process memory. It is meant for local
// development and tests; everything is lost on restart.
type memoryVaultStore struct {
	mu      sync.RWMutex
	records map[string]models.Record
}

// NewMemoryVaultStore returns an empty in-memory [VaultStore].
func NewMemoryVaultStore() VaultStore {
	return &memoryVaultStore{
		records: make(map[string]models.Record),
	}
}

func (m *memoryVaultStore) Create(ctx context.Context, record models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; exists {
		return ErrDuplicateID
	}
	m.records[record.ID] = cloneRecord(record)

	return nil
}

func (m *memoryVaultStore) Get(ctx context.Context, ownerID, id string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok || record.OwnerID != ownerID {
		return models.Record{}, ErrNotFound
	}

	return cloneRecord(record), nil
}

func (m *memoryVaultStore) Update(ctx context.Context, record models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[record.ID]
	if !ok || current.OwnerID != record.OwnerID {
		return ErrNotFound
	}

	current.Website = record.Website
	current.Username = record.Username
	current.Envelope = record.Envelope
	current.UpdatedAt = record.UpdatedAt
	m.records[record.ID] = cloneRecord(current)

	return nil
}

func (m *memoryVaultStore) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok || record.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.records, id)

	return nil
}

func (m *memoryVaultStore) Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)

	m.mu.RLock()
	views := make([]models.RecordView, 0, 16)
	for _, record := range m.records {
		if record.OwnerID != ownerID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(record.Website), needle) &&
			!strings.Contains(strings.ToLower(record.Username), needle) {
			continue
		}
		views = append(views, record.View())
	}
	m.mu.RUnlock()

	slices.SortFunc(views, func(a, b models.RecordView) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return views, nil
}

func (m *memoryVaultStore) ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error) {
	return m.Search(ctx, ownerID, "")
}

func (m *memoryVaultStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// cloneRecord copies the envelope byte slices so callers never share memory
// with the store.
func cloneRecord(r models.Record) models.Record {
	r.Envelope.Salt = slices.Clone(r.Envelope.Salt)
	r.Envelope.Nonce = slices.Clone(r.Envelope.Nonce)
	r.Envelope.Ciphertext = slices.Clone(r.Envelope.Ciphertext)
	r.Envelope.AuthTag = slices.Clone(r.Envelope.AuthTag)
	return r
}
