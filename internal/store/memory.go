package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps datasets in process memory. It backs the service when no
// database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[uuid.UUID]*Dataset
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{datasets: make(map[uuid.UUID]*Dataset)}
}

func (s *MemoryStore) CreateDataset(_ context.Context, d *Dataset) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	d.PointCount = len(d.Points)

	stored := *d
	stored.Points = append([]DataPoint(nil), d.Points...)

	s.mu.Lock()
	s.datasets[d.ID] = &stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetDataset(_ context.Context, id uuid.UUID) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.datasets[id]
	if !ok {
		return nil, nil
	}
	out := *d
	out.Points = append([]DataPoint(nil), d.Points...)
	return &out, nil
}

func (s *MemoryStore) ListDatasets(_ context.Context, filter DatasetFilter) ([]*Dataset, error) {
	s.mu.RLock()
	var out []*Dataset
	for _, d := range s.datasets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Name)) {
			continue
		}
		summary := *d
		summary.Points = nil
		out = append(out, &summary)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) DeleteDataset(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(s.datasets, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
