package publication

import (
	"context"
	"sync"

	"researchpub/internal/fields"
)

// MemoryFields is a FieldReader over values held in memory. Values are kept
// in stored form and formatted per the group's field definitions on read.
type MemoryFields struct {
	mu      sync.RWMutex
	group   fields.Group
	records map[string]fields.Values
}

func NewMemoryFields(group fields.Group) *MemoryFields {
	return &MemoryFields{group: group, records: make(map[string]fields.Values)}
}

// Put replaces the stored values of a publication.
func (m *MemoryFields) Put(publicationID string, values fields.Values) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[publicationID] = values
}

// PutPublication stores the custom fields of p.
func (m *MemoryFields) PutPublication(p Publication) {
	m.Put(p.ID, p.Values())
}

func (m *MemoryFields) GetField(_ context.Context, key, publicationID string) (fields.Value, error) {
	m.mu.RLock()
	v := m.records[publicationID][key]
	m.mu.RUnlock()

	if f, ok := m.group.Field(key); ok {
		v = f.Format(v)
	}
	return v, nil
}
