package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/JonMunkholm/mrv/internal/core"
)

// Memory is an in-process RecordStore. It keeps encoded documents, so reads
// go through the same strict decode as the other backends.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
	now  func() time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte), now: time.Now}
}

// Put stores item under key, replacing any previous version.
func (m *Memory) Put(ctx context.Context, key core.Key, item *core.VesselItem) error {
	data, err := EncodeDocument(key, item, m.now())
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.docs[key.SortKey()] = data
	m.mu.Unlock()
	return nil
}

// Get returns the item stored under key, or core.ErrNotFound.
func (m *Memory) Get(ctx context.Context, key core.Key) (*core.VesselItem, error) {
	m.mu.RLock()
	data, ok := m.docs[key.SortKey()]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", key.SortKey(), core.ErrNotFound)
	}

	item, _, err := DecodeDocument(data)
	return item, err
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Items decodes every stored item, ordered by sort key. It fails on the
// first document that does not decode.
func (m *Memory) Items() ([]*core.VesselItem, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	// Put replaces documents and never writes into a stored slice, so the
	// snapshot can be decoded without the lock.
	docs := make([][]byte, 0, len(keys))
	slices.Sort(keys)
	for _, k := range keys {
		docs = append(docs, m.docs[k])
	}
	m.mu.RUnlock()

	items := make([]*core.VesselItem, 0, len(docs))
	for i, data := range docs {
		item, _, err := DecodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keys[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}
