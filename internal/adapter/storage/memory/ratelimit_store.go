// Package memory holds in-process fallbacks for stores that normally live in
// Redis. They are per-instance and reset on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"church-cms/internal/core/ports"
)

type counter struct {
	count   int64
	resetAt time.Time
}

// RateLimitStore implements ports.RateLimitStore with fixed windows kept in
// a map. Expired windows are swept on access.
type RateLimitStore struct {
	mu        sync.Mutex
	counters  map[string]*counter
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimitStore creates an empty in-memory store.
func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

// Allow counts one request for key in the current window.
func (s *RateLimitStore) Allow(_ context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= window {
		s.sweep(now)
		s.lastSweep = now
	}

	c, ok := s.counters[key]
	if !ok || !now.Before(c.resetAt) {
		c = &counter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++

	remaining := limit - c.count
	if remaining < 0 {
		remaining = 0
	}

	return &ports.RateLimitResult{
		Allowed:   c.count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   c.resetAt.Unix(),
	}, nil
}

func (s *RateLimitStore) sweep(now time.Time) {
	for k, c := range s.counters {
		if !now.Before(c.resetAt) {
			delete(s.counters, k)
		}
	}
}

// Len reports how many keys are tracked.
func (s *RateLimitStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
