package memoize

import (
	"sync"
	"sync/atomic"
)

// Config supplies the two pure functions a Cache is built from. Both are
// fixed for the lifetime of the cache.
//
// Key must produce a unique string for each semantically distinct input.
// The cache performs no validation of that uniqueness; a Key that collides
// silently serves one input's output for another.
//
// Value derives the output to cache on a miss. It may return an
// eventually-resolved handle (a channel, a promise-like struct): the cache
// stores whatever Value returns, synchronously, before any resolution
// happens, so memoization applies to the handle itself rather than to its
// eventual result.
type Config[I any, O any] struct {
	Key   func(I) string
	Value func(I) (O, error)

	// Observer, when non-nil, is notified of hits, misses, and compute
	// failures. It never alters cache behavior.
	Observer Observer
}

// Cache is an unbounded memoization table: string keys derived from inputs,
// outputs computed once and kept until explicitly invalidated.
//
// The core design is intentionally explicit and "mechanical": a map gives
// O(1) key lookup, and an RWMutex makes the table safe for concurrent use.
// There is no eviction, no TTL, and no background work to own; the only
// capacity management is Delete and Clear.
type Cache[I any, O any] struct {
	mu    sync.RWMutex
	cfg   Config[I, O]
	store map[string]O

	lookups atomic.Uint64
	hits    atomic.Uint64
}

// Entry is one key/value pair for SetMany.
type Entry[O any] struct {
	Key   string
	Value O
}

// Stats reports lookup counters accumulated since construction.
// Clear resets the store, not the counters.
type Stats struct {
	Lookups uint64
	Hits    uint64
	Misses  uint64
}

// New constructs a cache with an empty store.
//
// Config functions are not validated; a nil Key or Value panics at its
// first use inside Get.
func New[I any, O any](cfg Config[I, O]) *Cache[I, O] {
	return &Cache[I, O]{
		cfg:   cfg,
		store: make(map[string]O),
	}
}

// NewFunc constructs a cache from the two functions directly. It is a
// convenience alias for New with a literal Config.
func NewFunc[I any, O any](key func(I) string, value func(I) (O, error)) *Cache[I, O] {
	return New(Config[I, O]{Key: key, Value: value})
}

// Get returns the output for input's derived key, computing and storing it
// on a miss.
//
// Hits take only an RLock. On a miss the write lock is held across Value,
// so for a given key Value runs at most once between invalidations
// (construction, Delete of that key, or Clear) even under concurrent use.
// The tradeoff is that Value must not call back into the same cache.
//
// When Value fails, nothing is stored and the error is returned as-is; the
// next Get for the same input computes again.
func (c *Cache[I, O]) Get(input I) (O, error) {
	key := c.cfg.Key(input)

	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	if ok {
		c.note(true)
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check because another miss could have stored between the locks.
	if v, ok := c.store[key]; ok {
		c.note(true)
		return v, nil
	}

	c.note(false)
	v, err := c.cfg.Value(input)
	if err != nil {
		if obs := c.cfg.Observer; obs != nil {
			obs.OnComputeError(key, err)
		}
		var zero O
		return zero, err
	}

	// Store synchronously, before any deferred handle resolves, so a second
	// Get for the same key hits on the handle instead of recomputing.
	c.store[key] = v
	return v, nil
}

// Set unconditionally installs or overwrites the entry for key.
//
// key is raw: it is not run through Config.Key, and nothing checks that it
// corresponds to any real input or that value matches what Config.Value
// would produce. This is the escape hatch for seeding or overriding cache
// contents; correctness under misuse is the caller's problem.
func (c *Cache[I, O]) Set(key string, value O) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}

// SetMany applies Set for each entry in sequence order. Later entries with
// duplicate keys win.
func (c *Cache[I, O]) SetMany(entries []Entry[O]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.store[e.Key] = e.Value
	}
}

// Delete removes the entry for key if present. Absent keys are a no-op,
// not an error.
func (c *Cache[I, O]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

// Clear discards every entry, resetting the store to empty. Subsequent
// Gets recompute.
func (c *Cache[I, O]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]O)
}

// Len returns the number of currently stored entries.
func (c *Cache[I, O]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Keys returns the stored keys in no particular order.
//
// This is a debug helper used by the demo.
func (c *Cache[I, O]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.store))
	for k := range c.store {
		out = append(out, k)
	}
	return out
}

// Stats returns the lookup counters.
func (c *Cache[I, O]) Stats() Stats {
	lookups := c.lookups.Load()
	hits := c.hits.Load()
	return Stats{
		Lookups: lookups,
		Hits:    hits,
		Misses:  lookups - hits,
	}
}

func (c *Cache[I, O]) note(hit bool) {
	c.lookups.Add(1)
	if hit {
		c.hits.Add(1)
	}

	obs := c.cfg.Observer
	if obs == nil {
		return
	}
	if hit {
		obs.OnHit()
	} else {
		obs.OnMiss()
	}
}
