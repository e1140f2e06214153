package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// InMemoryOutputStore implements usecase.OutputWriter by keeping every
// written file in memory. It backs the dry-run mode.
// NOTE: Nothing is persisted; contents are lost when the process exits.
type InMemoryOutputStore struct {
	mu     sync.RWMutex
	files  map[string][]byte // Map output path to content
	logger *slog.Logger
}

// NewInMemoryOutputStore creates a new in-memory output store.
func NewInMemoryOutputStore(logger *slog.Logger) *InMemoryOutputStore {
	return &InMemoryOutputStore{
		files:  make(map[string][]byte),
		logger: logger.With("component", "mem_store"),
	}
}

// Write stores a copy of data under path, replacing any earlier content.
func (s *InMemoryOutputStore) Write(ctx context.Context, path string, data []byte) error {
	if path == "" {
		s.logger.Error("Refusing to store file without a path")
		return fmt.Errorf("write failed: empty path")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = append([]byte(nil), data...)
	s.logger.Debug("Stored file", slog.String("path", path), slog.Int("bytes", len(data)), slog.Int("total_files", len(s.files)))
	return nil
}

// Paths returns the stored paths in lexical order.
func (s *InMemoryOutputStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Get returns the content stored under path.
func (s *InMemoryOutputStore) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// TotalBytes returns the combined size of all stored files.
func (s *InMemoryOutputStore) TotalBytes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, data := range s.files {
		n += len(data)
	}
	return n
}
