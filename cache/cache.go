package cache

import (
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the default number of cached entities
const DefaultSize = 4096

// Entry represents memoized entity output, DepKeys holds the key of every
// dependency the value was computed against
type Entry[V any] struct {
	Key     uint64
	Deps    []string
	DepKeys map[string]uint64
	Value   V
}

// Stats represents cache counters
type Stats struct {
	Hits          int
	Misses        int
	Invalidations int
}

// Cache memoizes per entity output keyed by structural hash, entries are
// invalidated per entity together with entities referencing them
type Cache[V any] struct {
	entries    *lru.Cache[string, *Entry[V]]
	dependents map[string]map[string]bool
	known      map[string]uint64
	stats      Stats
	mux        sync.Mutex
}

// New creates a cache holding up to size entities
func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	ret := &Cache[V]{dependents: map[string]map[string]bool{}, known: map[string]uint64{}}
	entries, err := lru.NewWithEvict[string, *Entry[V]](size, func(fqn string, entry *Entry[V]) {
		ret.unlink(fqn, entry.Deps)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	ret.entries = entries
	return ret, nil
}

// Sync compares current keys with cached ones, changed or removed entities are
// invalidated with their referrers, it returns sorted invalidated names. Keys
// become the known dependency keys checked by Get.
func (c *Cache[V]) Sync(keys map[string]uint64) []string {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.known = make(map[string]uint64, len(keys))
	for fqn, key := range keys {
		c.known[fqn] = key
	}
	var changed []string
	for _, fqn := range c.entries.Keys() {
		entry, ok := c.entries.Peek(fqn)
		if !ok {
			continue
		}
		if key, ok := keys[fqn]; !ok || key != entry.Key {
			changed = append(changed, fqn)
		}
	}
	for fqn := range c.dependents {
		if _, ok := keys[fqn]; !ok {
			changed = append(changed, fqn)
		}
	}
	invalidated := map[string]bool{}
	for _, fqn := range changed {
		c.invalidate(fqn, invalidated)
	}
	ret := make([]string, 0, len(invalidated))
	for fqn := range invalidated {
		ret = append(ret, fqn)
	}
	sort.Strings(ret)
	return ret
}

// Get returns cached value if present with matching key and every dependency
// still has the key the value was computed against
func (c *Cache[V]) Get(fqn string, key uint64) (V, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	var zero V
	entry, ok := c.entries.Get(fqn)
	if !ok || entry.Key != key || c.stale(entry) {
		c.stats.Misses++
		return zero, false
	}
	c.stats.Hits++
	return entry.Value, true
}

// Put stores value, deps are entities the value was derived from
func (c *Cache[V]) Put(fqn string, key uint64, deps []string, value V) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if previous, ok := c.entries.Peek(fqn); ok {
		c.unlink(fqn, previous.Deps)
	}
	c.known[fqn] = key
	entry := &Entry[V]{Key: key, Deps: append([]string(nil), deps...), DepKeys: make(map[string]uint64, len(deps)), Value: value}
	for _, dep := range deps {
		entry.DepKeys[dep] = c.known[dep]
	}
	c.entries.Add(fqn, entry)
	for _, dep := range deps {
		referrers, ok := c.dependents[dep]
		if !ok {
			referrers = map[string]bool{}
			c.dependents[dep] = referrers
		}
		referrers[fqn] = true
	}
}

// Invalidate removes entity entry and, one hop at a time, entries of its referrers
func (c *Cache[V]) Invalidate(fqn string) []string {
	c.mux.Lock()
	defer c.mux.Unlock()
	invalidated := map[string]bool{}
	c.invalidate(fqn, invalidated)
	ret := make([]string, 0, len(invalidated))
	for name := range invalidated {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Len returns number of cached entities
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Stats returns cache counters
func (c *Cache[V]) Stats() Stats {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.stats
}

func (c *Cache[V]) invalidate(fqn string, invalidated map[string]bool) {
	queue := []string{fqn}
	visited := map[string]bool{fqn: true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		c.remove(current, invalidated)
		for referrer := range c.dependents[current] {
			if visited[referrer] {
				continue
			}
			visited[referrer] = true
			queue = append(queue, referrer)
		}
		delete(c.dependents, current)
	}
}

// stale returns true if a dependency key changed since the entry was stored,
// this holds even when the dependency itself was evicted in the meantime
func (c *Cache[V]) stale(entry *Entry[V]) bool {
	for dep, key := range entry.DepKeys {
		if current, ok := c.known[dep]; !ok || current != key {
			return true
		}
	}
	return false
}

func (c *Cache[V]) remove(fqn string, invalidated map[string]bool) {
	entry, ok := c.entries.Peek(fqn)
	if !ok {
		return
	}
	c.unlink(fqn, entry.Deps)
	c.entries.Remove(fqn)
	invalidated[fqn] = true
	c.stats.Invalidations++
}

func (c *Cache[V]) unlink(fqn string, deps []string) {
	for _, dep := range deps {
		referrers := c.dependents[dep]
		delete(referrers, fqn)
		if len(referrers) == 0 {
			delete(c.dependents, dep)
		}
	}
}
