package cache

import (
	"fmt"
	"sync"
	"time"

	httpcache "github.com/SporkHubr/echo-http-cache"
	"github.com/SporkHubr/echo-http-cache/adapter/memory"
	"github.com/labstack/echo/v4"
)

// Revalidator marks the cached rendering of a logical path as stale.
type Revalidator interface {
	RevalidatePath(path string)
}

// Store is a response cache adapter that can drop everything it holds.
type Store interface {
	httpcache.Adapter
	Purge()
}

type StoreFactory func(path string) (Store, error)

// PageCache keeps one response cache per logical path so a mutation can
// invalidate the pages rendered under that path.
type PageCache struct {
	mu         sync.Mutex
	stores     map[string]Store
	newStore   StoreFactory
	ttl        time.Duration
	refreshKey string
}

func New(newStore StoreFactory, ttl time.Duration) *PageCache {
	return &PageCache{
		stores:     map[string]Store{},
		newStore:   newStore,
		ttl:        ttl,
		refreshKey: "opn",
	}
}

// NewMemory builds a PageCache backed by per-path in-process LRU stores.
func NewMemory(capacity int, ttl time.Duration) *PageCache {
	return New(func(path string) (Store, error) {
		adapter, err := memory.NewAdapter(
			memory.AdapterWithAlgorithm(memory.LRU),
			memory.AdapterWithCapacity(capacity),
		)
		if err != nil {
			return nil, err
		}
		return NewTrackingStore(adapter), nil
	}, ttl)
}

func (p *PageCache) store(path string) (Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.stores[path]; ok {
		return s, nil
	}
	s, err := p.newStore(path)
	if err != nil {
		return nil, err
	}
	p.stores[path] = s
	return s, nil
}

// Middleware caches GET responses of the routes registered under path.
func (p *PageCache) Middleware(path string) (echo.MiddlewareFunc, error) {
	s, err := p.store(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store for %s: %w", path, err)
	}
	client, err := httpcache.NewClient(
		httpcache.ClientWithAdapter(s),
		httpcache.ClientWithTTL(p.ttl),
		httpcache.ClientWithRefreshKey(p.refreshKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache client for %s: %w", path, err)
	}
	return client.Middleware(), nil
}

func (p *PageCache) RevalidatePath(path string) {
	p.mu.Lock()
	s, ok := p.stores[path]
	p.mu.Unlock()
	if ok {
		s.Purge()
	}
}

// TrackingStore remembers the keys written through it so they can be released together.
type TrackingStore struct {
	httpcache.Adapter

	mu   sync.Mutex
	keys map[uint64]struct{}
}

func NewTrackingStore(adapter httpcache.Adapter) *TrackingStore {
	return &TrackingStore{Adapter: adapter, keys: map[uint64]struct{}{}}
}

func (s *TrackingStore) Set(key uint64, response []byte, expiration time.Time) {
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
	s.Adapter.Set(key, response, expiration)
}

func (s *TrackingStore) Release(key uint64) {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	s.Adapter.Release(key)
}

func (s *TrackingStore) Purge() {
	s.mu.Lock()
	keys := s.keys
	s.keys = map[uint64]struct{}{}
	s.mu.Unlock()
	for key := range keys {
		s.Adapter.Release(key)
	}
}
