package icon

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the capacity of the shared caches.
const DefaultCacheSize = 100

// Cache is a bounded least-recently-used map safe for concurrent use.
type Cache[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// NewCache returns a cache holding at most size entries.
// A non-positive size selects DefaultCacheSize.
func NewCache[K comparable, V any](size int) *Cache[K, V] {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[K, V](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &Cache[K, V]{lru: c}
}

// Get returns the value stored under key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Add stores value under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache[K, V]) Add(key K, value V) {
	c.lru.Add(key, value)
}

// Contains reports whether key is cached without updating its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.lru.Contains(key)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

// DocumentCache holds unmodified vector documents keyed by file path.
type DocumentCache = Cache[string, *Template]

// SurfaceCache holds rendered surfaces keyed by their rendering parameters.
type SurfaceCache = Cache[Key, *Surface]

// NewDocumentCache returns an empty document cache.
func NewDocumentCache(size int) *DocumentCache {
	return NewCache[string, *Template](size)
}

// NewSurfaceCache returns an empty surface cache.
func NewSurfaceCache(size int) *SurfaceCache {
	return NewCache[Key, *Surface](size)
}

var (
	sharedOnce      sync.Once
	sharedDocuments *DocumentCache
	sharedSurfaces  *SurfaceCache
)

func initShared() {
	sharedOnce.Do(func() {
		sharedDocuments = NewDocumentCache(DefaultCacheSize)
		sharedSurfaces = NewSurfaceCache(DefaultCacheSize)
	})
}

// DefaultDocuments returns the process-wide document cache. It is created
// on first use and lives until the process exits.
func DefaultDocuments() *DocumentCache {
	initShared()
	return sharedDocuments
}

// DefaultSurfaces returns the process-wide surface cache. It is created
// on first use and lives until the process exits.
func DefaultSurfaces() *SurfaceCache {
	initShared()
	return sharedSurfaces
}
