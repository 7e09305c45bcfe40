// mock_store.go - In-memory PLC store implementation for testing
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plc-dashboard/backend/internal/models"
	"github.com/plc-dashboard/backend/internal/store"
)

// MockStore implements api.PLCStore in memory for handler tests.
type MockStore struct {
	mu   sync.RWMutex
	plcs map[string]models.NormalizedPLC

	// SaveErr, when set, is returned by Save to exercise failure paths.
	SaveErr error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{plcs: make(map[string]models.NormalizedPLC)}
}

func (m *MockStore) Save(_ context.Context, plc models.NormalizedPLC) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plcs[plc.ID] = plc
	return nil
}

func (m *MockStore) Get(_ context.Context, id string) (models.NormalizedPLC, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plc, ok := m.plcs[id]
	if !ok {
		return models.NormalizedPLC{}, store.ErrNotFound
	}
	return plc, nil
}

func (m *MockStore) List(_ context.Context) ([]models.NormalizedPLC, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.NormalizedPLC, 0, len(m.plcs))
	for _, plc := range m.plcs {
		out = append(out, plc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plcs[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.plcs, id)
	return nil
}

func (m *MockStore) UpdateStatus(_ context.Context, id string, status models.PLCStatus, connected bool, lastChecked time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	plc, ok := m.plcs[id]
	if !ok {
		return store.ErrNotFound
	}
	plc.Status = status
	plc.IsConnected = connected
	plc.LastChecked = lastChecked
	m.plcs[id] = plc
	return nil
}

// Count returns the number of stored PLCs.
func (m *MockStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plcs)
}
