package metadata

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcodekit/pcheck/internal/typesystem"
)

// countingResolver records how often each class is resolved.
type countingResolver struct {
	mu    sync.Mutex
	known map[string]*TypeMetadata
	calls map[string]int
}

func newCountingResolver(names ...string) *countingResolver {
	r := &countingResolver{known: make(map[string]*TypeMetadata), calls: make(map[string]int)}
	for _, n := range names {
		r.known[n] = &TypeMetadata{QualifiedName: n}
	}
	return r
}

func (r *countingResolver) GetTypeMetadata(name string) (*TypeMetadata, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name]++
	md, ok := r.known[name]
	return md, ok
}

func (r *countingResolver) GetFieldType(string, string) typesystem.Type { return typesystem.TAny }
func (r *countingResolver) GetClassesInPackage(string) []string         { return nil }

func (r *countingResolver) callCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func TestCacheMemoizesHits(t *testing.T) {
	backing := newCountingResolver("PKG:A")
	c := NewCache(backing)

	for i := 0; i < 5; i++ {
		md, ok := c.GetTypeMetadata("PKG:A")
		require.True(t, ok)
		assert.Equal(t, "PKG:A", md.QualifiedName)
	}
	assert.Equal(t, 1, backing.callCount("PKG:A"))
}

func TestCacheKeysAreCaseInsensitive(t *testing.T) {
	backing := newCountingResolver("PKG:A")
	c := NewCache(backing)

	_, _ = c.GetTypeMetadata("PKG:A")
	_, ok := c.GetTypeMetadata("pkg:a")
	require.True(t, ok)
	assert.Equal(t, 1, backing.callCount("PKG:A"))
}

func TestCacheMemoizesMisses(t *testing.T) {
	backing := newCountingResolver()
	c := NewCache(backing)

	for i := 0; i < 3; i++ {
		md, ok := c.GetTypeMetadata("PKG:Nope")
		assert.False(t, ok)
		assert.Nil(t, md)
	}
	assert.Equal(t, 1, backing.callCount("PKG:Nope"))
}

func TestCachePutPrimes(t *testing.T) {
	backing := newCountingResolver()
	c := NewCache(backing)

	c.Put("PKG:Self", &TypeMetadata{QualifiedName: "PKG:Self"})
	md, ok := c.GetTypeMetadata("pkg:self")
	require.True(t, ok)
	assert.Equal(t, "PKG:Self", md.QualifiedName)
	assert.Equal(t, 0, backing.callCount("PKG:Self"))
}

func TestCacheEvictionBoundsSize(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("PKG:C%02d", i)
	}
	backing := newCountingResolver(names...)

	c := NewCache(backing)
	c.GenerationPeriod = 0 // size ceiling only
	c.MaxEntries = 8
	c.EvictCount = 3

	for _, n := range names {
		_, ok := c.GetTypeMetadata(n)
		require.True(t, ok)
	}
	assert.LessOrEqual(t, c.Len(), 8)

	// The most recent entry survives every sweep.
	last := names[len(names)-1]
	_, ok := c.GetTypeMetadata(last)
	require.True(t, ok)
	assert.Equal(t, 1, backing.callCount(last))
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	backing := newCountingResolver("PKG:Hot", "PKG:Cold1", "PKG:Cold2", "PKG:Cold3")
	c := NewCache(backing)
	c.GenerationPeriod = 0
	c.MaxEntries = 3
	c.EvictCount = 1

	_, _ = c.GetTypeMetadata("PKG:Cold1")
	_, _ = c.GetTypeMetadata("PKG:Hot")
	_, _ = c.GetTypeMetadata("PKG:Cold2")
	_, _ = c.GetTypeMetadata("PKG:Hot") // refresh recency
	_, _ = c.GetTypeMetadata("PKG:Cold3")

	_, _ = c.GetTypeMetadata("PKG:Hot")
	assert.Equal(t, 1, backing.callCount("PKG:Hot"), "hot entry was evicted")
}

func TestCacheGenerationSweep(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("PKG:G%02d", i)
	}
	backing := newCountingResolver(names...)

	c := NewCache(backing)
	c.GenerationPeriod = 10
	c.EvictCount = 2
	c.MaxEntries = 0 // no size ceiling; only the periodic sweep runs

	for _, n := range names {
		_, _ = c.GetTypeMetadata(n)
	}
	assert.Less(t, c.Len(), len(names))
}

func TestCacheConcurrentAccess(t *testing.T) {
	names := make([]string, 16)
	for i := range names {
		names[i] = fmt.Sprintf("PKG:P%02d", i)
	}
	backing := newCountingResolver(names...)
	c := NewCache(backing)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				name := names[(seed+i)%len(names)]
				if md, ok := c.GetTypeMetadata(name); ok && md == nil {
					t.Errorf("found entry with nil metadata for %s", name)
				}
			}
		}(g)
	}
	wg.Wait()
}
