// internal/querycache/cache.go
//
// Result cache for list queries, backed by sturdyc.
//
// Context
// -------
// Every distinct query-parameter tuple maps to one cache key.  Entries live
// for a fixed TTL (five minutes by default) and the whole cache is
// invalidated on every mutation.
//
// Whole-cache invalidation is implemented with versioned keys rather than by
// walking the backend: an atomic generation counter prefixes every key, and
// InvalidateAll bumps it.  Entries from older generations become
// unreachable immediately and age out of the backend via TTL and capacity
// eviction.  This makes invalidation O(1) and closes the stale-page window
// that per-named-key purging would leave open, since any record can appear
// in any page under arbitrary filters.
package querycache

import (
	"sync/atomic"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/JMLOSP/UserManagementAPI/internal/employee"
)

// Defaults sized for a single-process working set.
const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 10000
	DefaultShards   = 64
	evictionPercent = 10
)

// Config tunes the cache backend.  Zero fields fall back to the defaults.
type Config struct {
	TTL      time.Duration
	Capacity int
	Shards   int
}

// Cache memoizes employee.QueryResult values.  It satisfies
// employee.ResultCache.  Safe for concurrent use.
type Cache struct {
	client     *sturdyc.Client[employee.QueryResult]
	generation atomic.Uint64
}

// New constructs a Cache.
func New(cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultShards
	}
	return &Cache{
		client: sturdyc.New[employee.QueryResult](
			cfg.Capacity,
			cfg.Shards,
			cfg.TTL,
			evictionPercent,
		),
	}
}

// Key returns the deterministic cache key for params under the current
// generation.
func (c *Cache) Key(params employee.QueryParams) string {
	return serializeKey(c.generation.Load(), params)
}

// Get returns the cached page for params, if present and unexpired.
func (c *Cache) Get(params employee.QueryParams) (employee.QueryResult, bool) {
	return c.client.Get(c.Key(params))
}

// Set stores a computed page under a key previously obtained from Key.
// The caller captures the key before computing, so a page computed across
// an InvalidateAll is stored in the superseded generation and never served.
// Two racing writers for the same key store equivalent values, so last
// write wins is fine.
func (c *Cache) Set(key string, res employee.QueryResult) {
	c.client.Set(key, res)
}

// InvalidateAll bumps the generation, logically evicting every entry.
func (c *Cache) InvalidateAll() {
	c.generation.Add(1)
}

// Size reports the number of physical entries in the backend, including
// entries from superseded generations that have not aged out yet.
func (c *Cache) Size() int {
	return c.client.Size()
}
