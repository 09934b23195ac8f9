package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps entries in process memory.
// Used by default and as the fallback when Redis is unavailable; entries do
// not survive a restart and are not shared between replicas.
type MemoryCache struct {
	mu      sync.Mutex
	answers map[string]memoryEntry[Answer]
	uploads map[string]memoryEntry[Upload]
	now     func() time.Time
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		answers: make(map[string]memoryEntry[Answer]),
		uploads: make(map[string]memoryEntry[Upload]),
		now:     time.Now,
	}
}

// GetAnswer returns nil on a miss or an expired entry
func (c *MemoryCache) GetAnswer(_ context.Context, key string) (*Answer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := lookup(c.answers, key, c.now())
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// SetAnswer stores a copy of answer; a non-positive ttl never expires
func (c *MemoryCache) SetAnswer(_ context.Context, key string, answer *Answer, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[key] = memoryEntry[Answer]{value: *answer, expiresAt: c.expiry(ttl)}
	return nil
}

// GetUpload returns nil on a miss or an expired entry
func (c *MemoryCache) GetUpload(_ context.Context, id string) (*Upload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := lookup(c.uploads, id, c.now())
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// SetUpload stores a copy of upload; a non-positive ttl never expires
func (c *MemoryCache) SetUpload(_ context.Context, id string, upload *Upload, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpired()
	c.uploads[id] = memoryEntry[Upload]{value: *upload, expiresAt: c.expiry(ttl)}
	return nil
}

// Close drops all entries
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = make(map[string]memoryEntry[Answer])
	c.uploads = make(map[string]memoryEntry[Upload])
	return nil
}

func (c *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

// evictExpired bounds memory held by abandoned uploads. Caller holds mu.
func (c *MemoryCache) evictExpired() {
	now := c.now()
	for k, e := range c.uploads {
		if e.expired(now) {
			delete(c.uploads, k)
		}
	}
	for k, e := range c.answers {
		if e.expired(now) {
			delete(c.answers, k)
		}
	}
}

func lookup[T any](m map[string]memoryEntry[T], key string, now time.Time) (T, bool) {
	e, ok := m[key]
	if !ok || e.expired(now) {
		var zero T
		return zero, false
	}
	return e.value, true
}
