package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"
)

// Store is the cache-aside entry point. Every failure of the backend is
// swallowed here and degrades to miss behavior; callers must treat a miss and
// a backend outage identically and recompute from the source of truth.
type Store struct {
	backend Backend

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a snapshot of the store's counters and backend state.
type Stats struct {
	Connected bool    `json:"connected"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hitRate"`
	TotalKeys int64   `json:"totalKeys"`
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get fetches key and JSON-decodes it into dest. Returns false on miss,
// decode failure or backend failure.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get failed key=%s err=%v", key, err)
		}
		s.misses.Add(1)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("cache decode failed key=%s err=%v", key, err)
		s.misses.Add(1)
		return false
	}
	s.hits.Add(1)
	return true
}

// Set stores val under key, best-effort. Failures are logged, never
// propagated.
func (s *Store) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	raw, err := json.Marshal(val)
	if err != nil {
		log.Printf("cache encode failed key=%s err=%v", key, err)
		return
	}
	if err := s.backend.Set(ctx, key, string(raw), ttl); err != nil {
		log.Printf("cache set failed key=%s err=%v", key, err)
	}
}

// DeleteMatching removes every key matching the glob pattern and returns how
// many were removed. Zero matches is a no-op.
func (s *Store) DeleteMatching(ctx context.Context, pattern string) int64 {
	keys, err := s.backend.Keys(ctx, pattern)
	if err != nil {
		log.Printf("cache keys scan failed pattern=%s err=%v", pattern, err)
		return 0
	}
	if len(keys) == 0 {
		return 0
	}
	n, err := s.backend.Del(ctx, keys...)
	if err != nil {
		log.Printf("cache delete failed pattern=%s err=%v", pattern, err)
		return 0
	}
	return n
}

// FlushAll purges the whole cache. Administrative surface only.
func (s *Store) FlushAll(ctx context.Context) error {
	return s.backend.FlushAll(ctx)
}

// Ping reports backend reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Stats reports the process-wide hit/miss counters and backend key count.
// Hit rate is 0 when there has been no traffic.
func (s *Store) Stats(ctx context.Context) Stats {
	st := Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	if err := s.backend.Ping(ctx); err == nil {
		st.Connected = true
	}
	if size, err := s.backend.Size(ctx); err == nil {
		st.TotalKeys = size
	}
	return st
}

// ResetStats zeroes the hit/miss counters.
func (s *Store) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
}
