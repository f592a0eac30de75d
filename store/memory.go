package store

import (
	"context"
	"sync"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/ajson"
)

// Memory is an in-process Store. It is safe for concurrent use and is what
// the server falls back to when no database is configured.
type Memory struct {
	mu      sync.RWMutex
	records []ajson.Record
}

// NewMemory returns an empty Memory store seeded with the given records.
// Seeded records without an ID are assigned one.
func NewMemory(seed ...ajson.Record) (*Memory, error) {
	m := &Memory{}
	for i := range seed {
		if err := m.Insert(context.Background(), &seed[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FindByKey1 returns a copy of the first record inserted with the given key1.
func (m *Memory) FindByKey1(_ context.Context, key1 string) (*ajson.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.records {
		if rec.Key1 == key1 {
			found := rec
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Insert appends a copy of the record, assigning a random ID if it has none.
func (m *Memory) Insert(_ context.Context, rec *ajson.Record) error {
	if rec.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return errors.Wrap(err, "unable to generate record ID")
		}
		rec.ID = id.String()
	}

	m.mu.Lock()
	m.records = append(m.records, *rec)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close does nothing.
func (m *Memory) Close() error {
	return nil
}
