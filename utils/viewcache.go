package utils

import (
	"encoding/json"
	"sync"
	"time"
)

// ViewStore is the backing store for cached views. Production uses
// Redis; tests use the in-memory implementation.
type ViewStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, b []byte, ttl time.Duration)
	Delete(key string)
}

type redisViewStore struct{}

func (redisViewStore) Get(key string) ([]byte, bool)            { return CacheGetBytes(key) }
func (redisViewStore) Set(key string, b []byte, t time.Duration) { CacheSetBytes(key, b, t) }
func (redisViewStore) Delete(key string)                        { CacheDelete(key) }

// MemoryViewStore is a trivial in-process ViewStore.
type MemoryViewStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryViewStore creates an empty in-memory store.
func NewMemoryViewStore() *MemoryViewStore {
	return &MemoryViewStore{data: map[string][]byte{}}
}

func (m *MemoryViewStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}

func (m *MemoryViewStore) Set(key string, b []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
}

func (m *MemoryViewStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// ViewCache applies the optimistic mutation discipline to cached views:
// snapshot the current value, patch it speculatively, run the remote
// write, then either invalidate (success, the next read refetches the
// authoritative state) or restore the snapshot exactly (failure).
// Mutations against the same key are serialized, so a second mutation
// always snapshots the value the first one left behind.
type ViewCache struct {
	store ViewStore
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewViewCache builds a ViewCache over an explicit store.
func NewViewCache(store ViewStore, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ViewCache{store: store, ttl: ttl, locks: map[string]*sync.Mutex{}}
}

var viewsOnce sync.Once
var views *ViewCache

// Views returns the process-wide Redis-backed ViewCache.
func Views() *ViewCache {
	viewsOnce.Do(func() {
		views = NewViewCache(redisViewStore{}, defaultCacheTTL)
	})
	return views
}

func (vc *ViewCache) keyLock(key string) *sync.Mutex {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	lk, ok := vc.locks[key]
	if !ok {
		lk = &sync.Mutex{}
		vc.locks[key] = lk
	}
	return lk
}

// Get returns the cached view bytes, if present.
func (vc *ViewCache) Get(key string) ([]byte, bool) {
	return vc.store.Get(key)
}

// Put caches authoritative view bytes after a fresh read.
func (vc *ViewCache) Put(key string, b []byte) {
	vc.store.Set(key, b, vc.ttl)
}

// Invalidate drops a cached view so the next read refetches.
func (vc *ViewCache) Invalidate(key string) {
	vc.store.Delete(key)
}

// Mutate runs one optimistic mutation against the view at key. patch
// receives the current cached bytes (nil when the view is not cached)
// and returns the speculative post-write bytes, or nil to leave the
// cache untouched. write performs the remote mutation. On write failure
// the view is restored to the exact pre-mutation snapshot and the error
// is returned; on success the view is invalidated for reconciliation.
func (vc *ViewCache) Mutate(key string, patch func(current []byte) []byte, write func() error) error {
	lk := vc.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	snapshot, had := vc.store.Get(key)
	if patch != nil {
		if patched := patch(snapshot); patched != nil {
			vc.store.Set(key, patched, vc.ttl)
		}
	}

	if err := write(); err != nil {
		if had {
			vc.store.Set(key, snapshot, vc.ttl)
		} else {
			vc.store.Delete(key)
		}
		OptimisticRollbacks.Inc()
		return err
	}

	vc.store.Delete(key)
	return nil
}

// MutateJSON is Mutate for JSON-encoded views of type T. patch mutates
// the decoded view in place; it is skipped when the view is not cached
// or fails to decode (the write still runs).
func MutateJSON[T any](vc *ViewCache, key string, patch func(*T), write func() error) error {
	return vc.Mutate(key, func(current []byte) []byte {
		if current == nil || patch == nil {
			return nil
		}
		var v T
		if err := json.Unmarshal(current, &v); err != nil {
			return nil
		}
		patch(&v)
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return b
	}, write)
}
