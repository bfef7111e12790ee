package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/d3flow/mindflow/model"
)

// MemoryStorage implements Storage in process memory, for tests and
// throwaway sessions.
type MemoryStorage struct {
	mu       sync.RWMutex
	diagrams map[uuid.UUID]*model.Diagram
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{diagrams: map[uuid.UUID]*model.Diagram{}}
}

func (s *MemoryStorage) SaveDiagram(ctx context.Context, d *model.Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prepareSave(d)
	if existing, ok := s.diagrams[d.ID]; ok {
		d.CreatedAt = existing.CreatedAt
	}
	clone := *d
	s.diagrams[d.ID] = &clone
	return nil
}

func (s *MemoryStorage) GetDiagram(ctx context.Context, id uuid.UUID) (*model.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *MemoryStorage) ListDiagrams(ctx context.Context, typ model.DiagramType) ([]*model.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Diagram
	for _, d := range s.diagrams {
		if typ != "" && d.Type != typ {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStorage) SearchDiagrams(ctx context.Context, query string) ([]*model.Diagram, error) {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Diagram
	for _, d := range s.diagrams {
		if strings.Contains(strings.ToLower(d.Title), q) ||
			strings.Contains(strings.ToLower(d.Description), q) ||
			strings.Contains(strings.ToLower(d.Source), q) {
			clone := *d
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStorage) DeleteDiagram(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, id)
	return nil
}

func (s *MemoryStorage) Stats(ctx context.Context) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &model.Stats{TypeCounts: map[model.DiagramType]int{}}
	for _, d := range s.diagrams {
		stats.TypeCounts[d.Type]++
		stats.TotalCount++
		if stats.LatestUpdate == nil || d.UpdatedAt.After(*stats.LatestUpdate) {
			t := d.UpdatedAt
			stats.LatestUpdate = &t
		}
	}
	return stats, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

func sortNewestFirst(ds []*model.Diagram) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].UpdatedAt.Equal(ds[j].UpdatedAt) {
			return ds[i].Title < ds[j].Title
		}
		return ds[i].UpdatedAt.After(ds[j].UpdatedAt)
	})
}
