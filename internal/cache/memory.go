package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryBackend is a process-local Backend with TTL support and glob pattern
// matching. It backs local development and the test suites.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	b.mu.RLock()
	e, ok := b.entries[key]
	b.mu.RUnlock()
	if !ok {
		return "", ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		// Re-check under the write lock: a concurrent Set may have replaced
		// the entry since the read lock was dropped, and a fresh value must
		// not be evicted.
		b.mu.Lock()
		if cur, ok := b.entries[key]; ok && !cur.expiresAt.IsZero() && time.Now().After(cur.expiresAt) {
			delete(b.entries, key)
		}
		b.mu.Unlock()
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (b *MemoryBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	b.mu.Lock()
	b.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Del(_ context.Context, keys ...string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := b.entries[k]; ok {
			delete(b.entries, k)
			n++
		}
	}
	return n, nil
}

func (b *MemoryBackend) Keys(_ context.Context, pattern string) ([]string, error) {
	now := time.Now()
	b.mu.RLock()
	defer b.mu.RUnlock()
	var keys []string
	for k, e := range b.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		if globMatch(pattern, k) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (b *MemoryBackend) FlushAll(_ context.Context) error {
	b.mu.Lock()
	b.entries = make(map[string]memoryEntry)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Ping(_ context.Context) error { return nil }

func (b *MemoryBackend) Size(_ context.Context) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int64(len(b.entries)), nil
}

// globMatch implements the subset of Redis KEYS matching the key schema uses:
// '*' matches any run of characters, '?' matches one.
func globMatch(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		head, tail := pattern[:i], pattern[i+1:]
		if !matchExact(head, s) {
			return false
		}
		s = s[len(head):]
		for j := 0; j <= len(s); j++ {
			if globMatch(tail, s[j:]) {
				return true
			}
		}
		return false
	}
	return len(pattern) == len(s) && matchExact(pattern, s)
}

func matchExact(pattern, s string) bool {
	if len(s) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '?' && pattern[i] != s[i] {
			return false
		}
	}
	return true
}
