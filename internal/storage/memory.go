package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and local development
// without MinIO. It records delete calls so tests can assert external
// deletions happened exactly once.
type MemoryStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	deleteCalls map[string]int
}

// NewMemoryStore creates an empty in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:     make(map[string][]byte),
		deleteCalls: make(map[string]int),
	}
}

func (s *MemoryStore) Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data

	return Object{
		URL:      "memory://upload/" + name,
		Filename: name,
	}, nil
}

// Delete removes the object if present. Absent keys succeed, matching the
// idempotency contract.
func (s *MemoryStore) Delete(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, filename)
	s.deleteCalls[filename]++
	return nil
}

// Has reports whether an object is currently stored.
func (s *MemoryStore) Has(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[filename]
	return ok
}

// DeleteCalls returns how many times Delete was invoked for filename.
func (s *MemoryStore) DeleteCalls(filename string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCalls[filename]
}
