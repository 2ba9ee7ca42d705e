package classify

import (
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the capacity used when NewCache gets a size <= 0.
const DefaultCacheSize = 5000

// The cache key includes contextBefore tokens before the word and
// contextAfter tokens after it.
const (
	contextBefore = 12
	contextAfter  = 1
)

// Cache is a bounded memo of classification results. When full, the
// oldest tenth of the entries (at least one) is evicted in one go.
// Reads never reorder entries, so age is insertion order.
//
// Cached results are shared between callers and must be treated as
// read-only.
type Cache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, Result]
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// NewCache creates a cache holding up to capacity results.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	// capacity > 0, so New cannot fail
	entries, _ := lru.New[string, Result](capacity)
	return &Cache{entries: entries, capacity: capacity}
}

// Get returns the cached result for key.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries.Peek(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return r, ok
}

// Add stores r under key. Existing keys keep their value and position.
func (c *Cache) Add(key string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries.Contains(key) {
		return
	}
	if c.entries.Len() >= c.capacity {
		n := max(c.capacity/10, 1)
		for i := 0; i < n; i++ {
			if _, _, ok := c.entries.RemoveOldest(); !ok {
				break
			}
			c.evictions++
		}
	}
	c.entries.Add(key, r)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Purge drops every entry. Counters are kept.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Len:       c.entries.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// cacheKey combines the raw word, the surrounding window, the
// sentence-start flag and the feature bits.
func cacheKey(raw string, ctx Context, f Features) string {
	var b strings.Builder
	b.WriteString(raw)
	b.WriteByte(0)
	lo := max(ctx.Index-contextBefore, 0)
	hi := min(ctx.Index+contextAfter+1, len(ctx.Words))
	if lo < hi {
		b.WriteString(strings.Join(ctx.Words[lo:hi], "\x1f"))
		b.WriteByte(0)
		// position of the word inside the window
		b.WriteString(strconv.Itoa(ctx.Index - lo))
	}
	if ctx.AtSentenceStart {
		b.WriteString("|s")
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(f.bits())))
	return b.String()
}
