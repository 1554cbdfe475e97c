package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryPlanStore keeps uploaded plans in memory. It backs the handler
// tests and stands in when no bucket is configured.
type MemoryPlanStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ PlanStore = (*MemoryPlanStore)(nil)

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{objects: make(map[string][]byte)}
}

func (s *MemoryPlanStore) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("upload plan %s: %w", filename, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := PlanObjectPath(filename)
	s.objects[path] = data
	return "memory://" + path, path, nil
}

func (s *MemoryPlanStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

// Len reports how many plans are currently stored.
func (s *MemoryPlanStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Has reports whether a plan exists at the given object path.
func (s *MemoryPlanStore) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok
}
