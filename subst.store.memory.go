package subst

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of TemplateStore.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string][]*StoredTemplate // name -> versions (sorted by version desc)
	closed    bool
}

// NewMemoryStore creates a new in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string][]*StoredTemplate),
	}
}

// Get retrieves the latest version of a template by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	versions, ok := s.templates[name]
	if !ok || len(versions) == 0 {
		return nil, NewStoreTemplateNotFoundError(name)
	}
	return copyStoredTemplate(versions[0]), nil
}

// Put stores a template source, creating a new version if one exists.
func (s *MemoryStore) Put(ctx context.Context, name, source string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, NewStoreError(ErrMsgStoreEmptyName, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	now := time.Now().UTC()
	version := 1
	if versions := s.templates[name]; len(versions) > 0 {
		version = versions[0].Version + 1
	}

	stored := &StoredTemplate{
		Name:      name,
		Source:    source,
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Newest first.
	s.templates[name] = append([]*StoredTemplate{stored}, s.templates[name]...)
	return copyStoredTemplate(stored), nil
}

// List returns all stored template names in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes all versions of a template by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	if _, ok := s.templates[name]; !ok {
		return NewStoreTemplateNotFoundError(name)
	}
	delete(s.templates, name)
	return nil
}

// Close marks the store closed. Further operations fail.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
