package storage

import (
	"context"
	"sync"
)

// Object is a stored entry of MemoryStorage.
type Object struct {
	Data         []byte
	ContentType  string
	CacheControl string
}

// MemoryStorage implements Storage using an in-memory map.
// Used by the memory driver for local runs and by tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]Object)}
}

// Upload stores a copy of data under key, replacing any existing object.
func (s *MemoryStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: OpUpload, Key: key, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = Object{
		Data:         append([]byte(nil), data...),
		ContentType:  contentType,
		CacheControl: CacheControl,
	}
	return nil
}

// Delete removes key. Missing keys are ignored, as with S3.
func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: OpDelete, Key: key, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

// Get returns the object stored under key.
func (s *MemoryStorage) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
