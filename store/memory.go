package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultMaxAge is the entry lifetime used when a store is created without
// an explicit one.
const DefaultMaxAge = 30 * time.Minute

// ErrNotFound is returned when the given id has no entry in the store.
var ErrNotFound = errors.New("entry not found into the store")

// Entry stores a value and its last touched time.
type Entry struct {
	Value       []byte
	LastTouched time.Time
}

// Expired returns true if the entry is older than maxAge.
func (e *Entry) Expired(maxAge time.Duration) bool {
	return time.Since(e.LastTouched) > maxAge
}

// MemoryStore is a threadsafe in-memory key-value store, suitable for
// testing or single-instance use. Data is exported for inspection in tests;
// production code goes through the Store interface.
type MemoryStore struct {
	Data   map[string]*Entry
	MaxAge time.Duration
	mu     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Data:   map[string]*Entry{},
		MaxAge: DefaultMaxAge,
	}
}

// Start is a no-op for MemoryStore.
func (s *MemoryStore) Start(ctx context.Context) error { return nil }

// Stop is a no-op for MemoryStore.
func (s *MemoryStore) Stop(ctx context.Context) error { return nil }

// Delete removes any entry for the given id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data, id)
	return nil
}

// Exists returns true if the id is present in the store.
func (s *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.Data[id]
	return ok, nil
}

// Get retrieves the value for the given id. Returns ErrNotFound if absent.
func (s *MemoryStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.Data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.Value, nil
}

// GetString retrieves the string value for the given id.
func (s *MemoryStore) GetString(ctx context.Context, id string) (string, error) {
	val, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Set saves or updates a value for the given id, updating the LastTouched
// time.
func (s *MemoryStore) Set(ctx context.Context, id string, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data[id] = &Entry{
		Value:       val,
		LastTouched: time.Now(),
	}
	return nil
}

// SetString stores a string value as bytes.
func (s *MemoryStore) SetString(ctx context.Context, id string, val string) error {
	return s.Set(ctx, id, []byte(val))
}

// Touch renews the entry's LastTouched timestamp without changing its
// value. Returns ErrNotFound if the entry does not exist.
func (s *MemoryStore) Touch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.Data[id]
	if !ok {
		return ErrNotFound
	}
	e.LastTouched = time.Now()
	return nil
}

// Purge removes entries older than MaxAge.
func (s *MemoryStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.Data {
		if e.Expired(s.MaxAge) {
			delete(s.Data, id)
		}
	}
	return nil
}
