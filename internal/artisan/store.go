package artisan

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a concurrency-safe, in-memory Repository. Results come back
// in insertion order, the same order a fresh MongoDB collection yields.
type MemoryStore struct {
	mu       sync.RWMutex
	artisans []Artisan
	now      func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new artisan and returns it with its generated identifier.
func (s *MemoryStore) Create(_ context.Context, attrs Attributes) (Artisan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := Artisan{
		ID:         primitive.NewObjectID(),
		Attributes: attrs,
		CreatedAt:  s.now(),
	}
	s.artisans = append(s.artisans, a)
	return a, nil
}

// Find returns every artisan matching filter.
func (s *MemoryStore) Find(_ context.Context, filter Filter) ([]Artisan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Artisan, 0, len(s.artisans))
	for _, a := range s.artisans {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Len returns the number of stored artisans.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.artisans)
}
