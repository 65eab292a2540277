// Package memcache holds a small in-process TTL cache used when no Redis
// instance is configured.
package memcache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type TTLCache struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		data: make(map[string]entry),
	}
}

func (s *TTLCache) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *TTLCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	// Opportunistic cleanup so an idle cache does not grow without bound.
	if len(s.data) > 1024 {
		now := time.Now()
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
}

func (s *TTLCache) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
}
