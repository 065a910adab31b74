package metadata

import (
	"strings"
	"sync"

	"github.com/pcodekit/pcheck/internal/config"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Cache memoizes resolver lookups across analysis runs. Runs for
// different source units execute concurrently, so all access is
// mutex-guarded. Memory stays bounded through a generation counter:
// every GenerationPeriod operations (or when the entry count passes
// MaxEntries) an eviction sweep removes the EvictCount
// least-recently-used entries.
//
// Cache itself implements Resolver, so it drops in wherever the
// underlying resolver would be passed. It is an explicit object, not a
// process singleton; tests instantiate independent caches.
type Cache struct {
	mu       sync.Mutex
	resolver Resolver
	entries  map[string]*cacheEntry
	ops      int64 // monotonically increasing operation counter

	GenerationPeriod int
	EvictCount       int
	MaxEntries       int
}

type cacheEntry struct {
	md       *TypeMetadata // nil caches a definitive miss
	found    bool
	lastUsed int64
}

// NewCache wraps resolver with a bounded memoization layer.
func NewCache(resolver Resolver) *Cache {
	if resolver == nil {
		resolver = NullResolver{}
	}
	return &Cache{
		resolver:         resolver,
		entries:          make(map[string]*cacheEntry),
		GenerationPeriod: config.CacheGenerationPeriod,
		EvictCount:       config.CacheEvictCount,
		MaxEntries:       config.CacheMaxEntries,
	}
}

// GetTypeMetadata implements Resolver with memoization. Misses are
// cached too: an unresolvable class stays unresolvable for the
// lifetime of its entry, which keeps hot loops from hammering the
// backing store.
func (c *Cache) GetTypeMetadata(qualifiedName string) (*TypeMetadata, bool) {
	key := strings.ToLower(qualifiedName)

	c.mu.Lock()
	c.ops++
	if e, ok := c.entries[key]; ok {
		e.lastUsed = c.ops
		md, found := e.md, e.found
		c.maybeEvictLocked()
		c.mu.Unlock()
		return md, found
	}
	c.mu.Unlock()

	// Resolve outside the lock; the resolver may be slow (database).
	md, found := c.resolver.GetTypeMetadata(qualifiedName)

	c.mu.Lock()
	c.ops++
	c.entries[key] = &cacheEntry{md: md, found: found, lastUsed: c.ops}
	c.maybeEvictLocked()
	c.mu.Unlock()

	return md, found
}

func (c *Cache) GetFieldType(recordName, fieldName string) typesystem.Type {
	return c.resolver.GetFieldType(recordName, fieldName)
}

func (c *Cache) GetClassesInPackage(path string) []string {
	return c.resolver.GetClassesInPackage(path)
}

// Put primes the cache, typically with the metadata of the program
// currently being analyzed so self-references resolve without a
// round trip.
func (c *Cache) Put(qualifiedName string, md *TypeMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops++
	c.entries[strings.ToLower(qualifiedName)] = &cacheEntry{md: md, found: md != nil, lastUsed: c.ops}
	c.maybeEvictLocked()
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// maybeEvictLocked runs the bounded eviction pass when the generation
// counter or the size ceiling says so. Caller holds mu.
func (c *Cache) maybeEvictLocked() {
	due := c.GenerationPeriod > 0 && c.ops%int64(c.GenerationPeriod) == 0
	over := c.MaxEntries > 0 && len(c.entries) > c.MaxEntries
	if !due && !over {
		return
	}
	for i := 0; i < c.EvictCount && len(c.entries) > 0; i++ {
		var oldestKey string
		var oldest int64 = -1
		for k, e := range c.entries {
			if oldest < 0 || e.lastUsed < oldest {
				oldest = e.lastUsed
				oldestKey = k
			}
		}
		delete(c.entries, oldestKey)
	}
}
