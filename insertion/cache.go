// Package insertion implements the best-position search that places one job
// into the route (and position within that route) that minimizes total cost
// while satisfying every hard constraint, plus the parallel fold and result
// selection machinery the recreate operators drive it through.
package insertion

import "github.com/vrplab/engine/model"

// Cache memoizes the best insertion position found for a (route, job) pair,
// keyed by the route's version counter so a mutation invalidates every
// cached entry for that route without the caller tracking anything.
//
// Cache does no locking of its own and is not safe for concurrent use; the
// fold machinery in this package does not go through it.
type Cache struct {
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	route *model.RouteContext
	job   *model.Job
}

type cacheEntry struct {
	version uint64
	result  JobRouteResult
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]cacheEntry)}
}

// Get returns the cached result for (route, job) if present and still valid
// (the route's version has not advanced since it was stored).
func (c *Cache) Get(route *model.RouteContext, job *model.Job) (JobRouteResult, bool) {
	key := cacheKey{route: route, job: job}
	entry, ok := c.entries[key]
	if !ok || entry.version != route.Version() {
		return JobRouteResult{}, false
	}
	return entry.result, true
}

// Put stores result for (route, job) at route's current version.
func (c *Cache) Put(route *model.RouteContext, job *model.Job, result JobRouteResult) {
	c.entries[cacheKey{route: route, job: job}] = cacheEntry{version: route.Version(), result: result}
}

// Merge folds other's entries into c: keys for routes c has never seen copy
// over as-is, and on a key collision the entry with the newer route version
// wins (ties keep c's entry). Lets parallel fold branches each fill a
// private Cache and combine them after the reduce without locking.
func (c *Cache) Merge(other *Cache) {
	if other == nil {
		return
	}
	for key, entry := range other.entries {
		if mine, ok := c.entries[key]; ok && mine.version >= entry.version {
			continue
		}
		c.entries[key] = entry
	}
}
